package main

func init() {
	flagSet := rootCommand.Flags()

	flagSet.StringArrayVarP(&flags.skipPaths, "skip", "x", nil,
		"A folder or file path prefix to omit from traversal (repeatable)")
	flagSet.StringArrayVarP(&flags.skipPatterns, "skip-re", "o", nil,
		"A regular expression matched against file names to exclude (repeatable)")
	flagSet.BoolVarP(&flags.paranoid, "paranoid", "p", false,
		"Use SHA-3 instead of MD5 to hash file contents (env: SMLLR_PARANOID)")
	flagSet.StringVar(&flags.action, "action", "print",
		"What to do with each duplicate group: print, delete, or link")
	flagSet.StringVar(&flags.selectPolicy, "select", "shortest",
		"Which path to keep in each group: shortest, longest, oldest, or newest")
	flagSet.StringVar(&flags.format, "format", "text",
		"Report format for --action=print: text or yaml")
	flagSet.StringVar(&flags.logLevel, "log-level", "info",
		"Logging verbosity: disabled, error, warn, info, debug, or trace (env: SMLLR_LOG_LEVEL)")
	flagSet.BoolVar(&flags.noColor, "no-color", false,
		"Disable colorized output (env: SMLLR_NO_COLOR)")
}
