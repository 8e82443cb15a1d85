package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wld-code/TinyML-for-motor/internal/config"
	"github.com/wld-code/TinyML-for-motor/internal/server"
)

var RootCmd = &cobra.Command{
	Use:   "imucap",
	Short: "capture IMU gesture data over serial for TinyML training",
	Long:  "capture IMU gesture data over serial for TinyML training",
}

func CaptureCmdRunE(cmd *cobra.Command, args []string) error {
	return server.NewMainApp(cmd, args).PrepareRun().Run()
}

func CaptureCmdFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "default configuration path")
	cmd.Flags().StringP("port", "p", config.DefaultSerialName, "serial port the Arduino is connected to")
	cmd.Flags().IntP("baud", "b", config.DefaultSerialBaud, "serial baud rate, must match the sketch's Serial.begin")
	cmd.Flags().IntP("samples", "n", config.DefaultSamplesPerGesture, "samples per gesture")
	cmd.Flags().StringP("output", "o", config.DefaultOutputPath, "destination CSV file")
	cmd.Flags().Bool("debug", false, "toggle debug logging")
}

var CaptureCmd = &cobra.Command{
	Use: "capture",
	SuggestFor: []string{
		"cap", "capt", "record",
	},
	Short: "capture starts collecting samples using predefined configs.",
	Long: `capture starts collecting samples using predefined configs, by the following order:
1. path specified in --config flag
2. path defined in IMUCAP_CONFIG environment variable
3. default location $HOME/.config/imucap/config.yaml, /etc/imucap/config.yaml, current directory
The parameters in the configuration file will be overwritten by the following order:
1. command line arguments
2. environment variables
Samples are appended to the output CSV until the process is interrupted with Ctrl+C.
Rename the resulting file after the gesture it contains (e.g. punch.csv, flex.csv).
`,
	Example: `  imucap capture --port=/dev/ttyACM0 --baud=9600
  imucap capture --config=/path/to/config`,
	RunE: CaptureCmdRunE,
}

func InitCmdFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("print", false, "print config to stdout")
	cmd.Flags().BoolP("yes", "y", false, "overwrite")
	cmd.Flags().StringP("dest", "d", config.DefaultConfig, "where to write the configuration template")
}

var InitCmd = &cobra.Command{
	Use: "init",
	SuggestFor: []string{
		"ini", "in",
	},
	Short: "init create a configuration template",
	Long: `init create a configuration template.
The configuration file can be used to launch the capture loop.
If --print flag is present, the configuration will be printed to stdout.
If --dest / -d flag is present, the configuration will be saved to the path specified
Otherwise init will output configuration file to $HOME/.config/imucap/config.yaml
If --yes / -y flag is present, the configuration will be overwritten without confirmation
`,
	Example: `  imucap init --print
  imucap init --dest /path/to/config.yaml
  imucap init -d /path/to/config.yaml -y`,
	RunE: config.InitCfg,
}

var ProbeCmd = &cobra.Command{
	Use: "probe",
	SuggestFor: []string{
		"pro", "pr", "prob",
	},
	Short: "probe the serial ports for a connected device",
	Long: `probe the serial ports for a connected device.
The probe command will scan the platform serial ports for a device emitting
data at the configured baud rate and print the result to stdout.
Warning: only devices printing at the configured rate can be detected.
`,
	Example: `  imucap probe`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.NewMainApp(cmd, args).PrepareRun().ProbeSensor()
	},
}

func getRootCmd() *cobra.Command {

	CaptureCmdFlags(CaptureCmd)
	RootCmd.AddCommand(CaptureCmd)

	InitCmdFlags(InitCmd)
	RootCmd.AddCommand(InitCmd)

	RootCmd.AddCommand(ProbeCmd)

	return RootCmd
}

func Execute() {
	rootCmd := getRootCmd()
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
