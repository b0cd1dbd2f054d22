package slicermeta

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess      = 0  // Every file was rewritten
	ExitGeneralError = 1  // At least one file failed, or an unclassified error
	ExitUsageError   = 2  // CLI usage error (unknown flag, bad flag value)
	ExitPanic        = 3  // Internal panic (unexpected crash)
	ExitConfigError  = 10 // Invalid configuration or broken metadata catalog
)

// Source keys written by PrusaSlicer into G-code comments.
const (
	// PrusaEstimatedPrintingTime is formatted as "XXh YYm ZZs".
	PrusaEstimatedPrintingTime = "estimated printing time"

	// PrusaFilamentUsedMM is a length in millimeters with two decimal places.
	PrusaFilamentUsedMM = "filament used [mm]"
)

// Target keys understood by the AnkerMake M5.
const (
	// AnkerFlavor is the G-code flavour header key.
	AnkerFlavor = "FLAVOR"

	// AnkerPrintingTime is an integer number of seconds.
	AnkerPrintingTime = "TIME"

	// AnkerFilamentUsed is a length in meters.
	AnkerFilamentUsed = "Filament used"

	// DefaultFlavor is the only flavour the printer accepts.
	DefaultFlavor = "Marlin"
)

const (
	// CommentPrefixLength is the number of leading characters skipped before a
	// line is matched against source keys ("; " in PrusaSlicer output).
	CommentPrefixLength = 2

	// LengthFractionDigits is the number of decimal places PrusaSlicer writes
	// for lengths, absorbed into the ten-micrometer integer unit.
	LengthFractionDigits = 2

	// TenMicrometersPerMeter converts ten-micrometer units to meters.
	TenMicrometersPerMeter = 100000.0

	// BackupSuffix is appended to a path when --backup keeps the original content.
	BackupSuffix = ".bak"

	// EnvPrefix prefixes every environment variable slicermeta reads.
	EnvPrefix = "SLICERMETA_"
)
