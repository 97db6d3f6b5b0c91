package config

const (
	defaultLogDir           = ""
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultWindow           = 64
	defaultMaxLineBytes     = 64 << 20
	defaultOutputSuffix     = "_fixed"
	defaultQuarantineSuffix = "_quarantine"
	defaultInputEncoding    = "auto"
	defaultLedgerEnabled    = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir(),
			LogDir:  defaultLogDir,
		},
		Repair: Repair{
			Workers:          0,
			Window:           defaultWindow,
			MaxLineBytes:     defaultMaxLineBytes,
			OutputSuffix:     defaultOutputSuffix,
			QuarantineSuffix: defaultQuarantineSuffix,
		},
		Input: Input{
			Encoding: defaultInputEncoding,
		},
		Ledger: Ledger{
			Enabled: defaultLedgerEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
