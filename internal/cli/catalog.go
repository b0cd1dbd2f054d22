package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/slicermeta/slicermeta/internal/catalog"
	"github.com/slicermeta/slicermeta/internal/config"
	"github.com/slicermeta/slicermeta/internal/tui"
)

type catalogFlagValues struct {
	profile    string
	jsonOutput bool
}

var catalogFlags catalogFlagValues

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List and validate the field catalog",
		Long: `Lists the header lines slicermeta emits: constants, which are always
written, and fields, which are written when their source key is found in a file.
The catalog is validated; duplicate output keys exit with code 10.`,
		Args: cobra.NoArgs,
		RunE: runCatalog,
	}

	cmd.Flags().StringVar(&catalogFlags.profile, "profile", "",
		"Field catalog profile: default or extended")
	cmd.Flags().BoolVar(&catalogFlags.jsonOutput, "json", false,
		"Print the catalog as JSON")
	return cmd
}

// catalogEntry is the JSON form of a catalog property.
type catalogEntry struct {
	Kind      string `json:"kind"`
	Key       string `json:"key"`
	Value     string `json:"value,omitempty"`
	SourceKey string `json:"source_key,omitempty"`
	Transform string `json:"transform,omitempty"`
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd, func(cfg *config.Config) {
		if cmd.Flags().Changed("profile") {
			cfg.Profile = catalogFlags.profile
		}
	})
	if err != nil {
		return err
	}

	cat, err := catalog.ForProfile(cfg.Profile)
	if err != nil {
		return err
	}
	if err := cat.Check(); err != nil {
		return err
	}

	if catalogFlags.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), catalogEntries(cat))
	}
	printCatalog(cmd.OutOrStdout(), cfg.Profile, cat)
	return nil
}

func catalogEntries(cat *catalog.Catalog) []catalogEntry {
	entries := make([]catalogEntry, 0, cat.Len())
	for _, p := range cat.Properties() {
		entry := catalogEntry{Kind: p.Kind.String(), Key: p.OutputKey()}
		if p.Kind == catalog.KindConstant {
			entry.Value = p.Value
		} else {
			entry.SourceKey = p.SourceKey
			entry.Transform = p.TransformName()
		}
		entries = append(entries, entry)
	}
	return entries
}

func printCatalog(w io.Writer, profile string, cat *catalog.Catalog) {
	fmt.Fprintln(w, tui.TitleStyle.Render(fmt.Sprintf("Field catalog (%s profile)", profile)))

	fmt.Fprintln(w, tui.SubtitleStyle.Render("Constants"))
	for _, p := range cat.Constants() {
		fmt.Fprintf(w, "  %s %s\n", tui.KeyStyle.Render(";"+p.Name+":"+p.Value), tui.DescriptionStyle.Render("always"))
	}

	fmt.Fprintln(w, tui.SubtitleStyle.Render("Fields"))
	for _, p := range cat.Fields() {
		fmt.Fprintf(w, "  %s %s %s %s\n",
			fmt.Sprintf("%q", p.SourceKey),
			tui.SymbolArrowRight,
			tui.KeyStyle.Render(p.TargetKey),
			tui.DescriptionStyle.Render("("+p.TransformName()+")"))
	}
	fmt.Fprintln(w, tui.SuccessStyle.Render(tui.SymbolCheck+fmt.Sprintf(" %d entries, no duplicate keys", cat.Len())))
}
