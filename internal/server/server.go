package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wld-code/TinyML-for-motor/internal/config"
	"github.com/wld-code/TinyML-for-motor/internal/recorder"
	"github.com/wld-code/TinyML-for-motor/internal/sensor/nano33"
	"github.com/wld-code/TinyML-for-motor/pkg/version"
)

type mainApp struct {
	name string
	cmd  *cobra.Command
	args []string
	opt  *config.IMUCapOpt
}

type MainApp interface {
	Run() error
	PrepareRun() MainApp
	GetOpt() *config.IMUCapOpt
	SetOpt(*config.IMUCapOpt)
	ProbeSensor() error
}

func (a *mainApp) GetOpt() *config.IMUCapOpt {
	return a.opt
}

func (a *mainApp) SetOpt(opt *config.IMUCapOpt) { a.opt = opt }

// Run opens the serial source and the CSV sink, then captures samples
// until the process is interrupted. Both resources are released on
// every exit path; an interrupt is a normal termination.
func (a *mainApp) Run() error {
	log.Infoln("version:", version.GitVersion)
	log.Infoln("serial.name:", a.opt.Serial.Name)
	log.Infoln("serial.baud:", a.opt.Serial.Baud)
	log.Infoln("serial.timeout:", a.opt.Serial.Timeout)
	log.Infoln("capture.samples:", a.opt.Capture.Samples)
	log.Infoln("capture.output:", a.opt.Capture.Output)
	log.Infoln("debug:", a.opt.Debug)

	src := nano33.NewSource(a.opt.Serial)
	if err := src.Open(); err != nil {
		return fmt.Errorf("open serial port %s: %w", a.opt.Serial.Name, err)
	}
	defer func() { _ = src.Close() }()

	rec := recorder.New(src, a.opt.Capture.Samples, a.opt.Capture.Output)
	if err := rec.Open(); err != nil {
		return fmt.Errorf("open output file %s: %w", a.opt.Capture.Output, err)
	}
	defer func() { _ = rec.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("starting data collection, press Ctrl+C to stop")
	log.Infof("listening on port %s at %d baud", a.opt.Serial.Name, a.opt.Serial.Baud)
	log.Infof("each gesture requires %d samples", a.opt.Capture.Samples)

	if err := rec.Run(ctx); err != nil {
		return err
	}
	rec.Summary()
	return nil
}

func (a *mainApp) PrepareRun() MainApp {
	desc := config.NewIMUCapDesc()
	err := desc.Parse(a.cmd)
	if err != nil {
		log.Errorln(err)
		os.Exit(1)
		return nil
	}
	desc.PostParse()
	a.opt = &desc.Opt
	a.name = config.DefaultAppName

	if a.opt.Debug {
		log.SetLevel(log.DebugLevel)
	}

	return a
}

func NewMainApp(cmd *cobra.Command, args []string) MainApp {
	return &mainApp{
		cmd:  cmd,
		args: args,
	}
}
