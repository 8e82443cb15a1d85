package main

import (
	"fmt"
	"strings"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wld-code/TinyML-for-motor/internal/config"
	sensor2 "github.com/wld-code/TinyML-for-motor/internal/sensor"
	"github.com/wld-code/TinyML-for-motor/internal/sensor/nano33"
	"github.com/wld-code/TinyML-for-motor/internal/server"
)

var defaultTableValue = [][]string{
	{"Port", ""},
	{"Last sample", ""},
	{"Samples this gesture", ""},
	{"Gestures completed", ""},
	{"Discarded lines", ""},
}

func getTable() *widgets.Table {
	table := widgets.NewTable()
	table.Rows = defaultTableValue
	table.ColumnWidths = []int{24, 56}
	table.TextStyle = ui.NewStyle(ui.ColorWhite)
	table.TextAlignment = ui.AlignLeft
	table.SetRect(0, 0, 82, 12)
	return table
}

func updateValue(opt *config.IMUCapOpt, table *widgets.Table) {
	src := nano33.NewSource(opt.Serial)
	if err := src.Open(); err != nil {
		log.Panicln(err)
	}
	defer func() { _ = src.Close() }()

	table.Rows[0][1] = fmt.Sprintf("%s @ %d baud", opt.Serial.Name, opt.Serial.Baud)

	samples := 0
	gestures := 0
	discarded := 0

	for {
		line, err := src.ReadLine()
		if err != nil {
			log.Warnln(err)
			continue
		}
		sample, _, kind := sensor2.ParseLine(line)
		switch kind {
		case sensor2.LineSample:
			samples++
			if samples == opt.Capture.Samples {
				samples = 0
				gestures++
			}
			table.Rows[1][1] = strings.Join(sample.Fields(), ", ")
		case sensor2.LineMalformed, sensor2.LineBinary:
			discarded++
		}

		table.Rows[2][1] = fmt.Sprintf("%d / %d", samples, opt.Capture.Samples)
		table.Rows[3][1] = fmt.Sprintf("%d", gestures)
		table.Rows[4][1] = fmt.Sprintf("%d", discarded)
		ui.Render(table)
	}
}

func _main(cmd *cobra.Command, args []string) {
	log.Info("Starting")
	if err := ui.Init(); err != nil {
		log.Fatalf("failed to initialize termui: %v", err)
	}
	defer ui.Close()

	t := getTable()
	opt := server.NewMainApp(cmd, args).PrepareRun().GetOpt()
	go updateValue(opt, t)

	uiEvents := ui.PollEvents()
	for {
		e := <-uiEvents
		switch e.ID {
		case "q", "<C-c>":
			return
		}
	}
}

var rootCmd = &cobra.Command{
	Use:   "serial_monitor",
	Short: "live view of the samples arriving on the serial port",
	Long:  "live view of the samples arriving on the serial port",
	Run: func(cmd *cobra.Command, args []string) {
		_main(cmd, args)
	},
}

func main() {
	rootCmd.Flags().String("config", "", "default configuration path")
	rootCmd.Flags().StringP("port", "p", config.DefaultSerialName, "serial port the Arduino is connected to")
	rootCmd.Flags().IntP("baud", "b", config.DefaultSerialBaud, "serial baud rate")
	rootCmd.Flags().IntP("samples", "n", config.DefaultSamplesPerGesture, "samples per gesture")
	rootCmd.Flags().Bool("debug", false, "toggle debug logging")

	err := rootCmd.Execute()
	if err != nil {
		return
	}
}
