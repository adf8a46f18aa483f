package sevenzip

// Options selects the binary and prompt behavior of the extraction.
type Options struct {
	Binary        string // Default "7z".
	NoInteraction bool   // Pass -y so 7-Zip answers its own prompts.
}

// Build returns the full argv for extracting archive into destination with
// full paths: 7z x -o<destination> [-y] <archive>.
func Build(opts Options, archive, destination string) []string {
	bin := opts.Binary
	if bin == "" {
		bin = "7z"
	}
	args := []string{bin, "x", "-o" + destination}
	if opts.NoInteraction {
		args = append(args, "-y")
	}
	return append(args, archive)
}
