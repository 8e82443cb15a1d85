package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/wld-code/TinyML-for-motor/internal/utils"
)

const DefaultAppName = "imucap"
const DefaultConfigName = "config"
const DefaultSerialName = "COM7"
const DefaultSerialBaud = 9600
const DefaultReadTimeoutS = 1
const DefaultSamplesPerGesture = 119
const DefaultOutputPath = "output.csv"

var userHomeDir, _ = os.UserHomeDir()
var DefaultConfig = path.Join(userHomeDir, ".config/"+DefaultAppName+"/"+DefaultConfigName+".yaml")
var DefaultConfigSearchPath0 = path.Join(userHomeDir, ".config", DefaultAppName)

const DefaultConfigSearchPath1 = "/etc/" + DefaultAppName
const DefaultConfigSearchPath2 = "./"
const DefaultConfigSearchPath3 = "/config"

type SerialOpt struct {
	Name    string `yaml:"name"`
	Baud    int    `yaml:"baud"`
	Timeout int    `yaml:"timeout"`
}

type CaptureOpt struct {
	Samples int    `yaml:"samples"`
	Output  string `yaml:"output"`
}

type IMUCapOpt struct {
	Serial  SerialOpt  `yaml:"serial"`
	Capture CaptureOpt `yaml:"capture"`
	Debug   bool       `yaml:"debug"`
}

type IMUCapDesc struct {
	Opt   IMUCapOpt
	Viper *viper.Viper
}

func NewIMUCapDesc() IMUCapDesc {
	return IMUCapDesc{
		Opt:   NewIMUCapOpt(),
		Viper: nil,
	}
}

func NewIMUCapOpt() IMUCapOpt {
	return IMUCapOpt{
		Serial: SerialOpt{
			Name:    DefaultSerialName,
			Baud:    DefaultSerialBaud,
			Timeout: DefaultReadTimeoutS,
		},
		Capture: CaptureOpt{
			Samples: DefaultSamplesPerGesture,
			Output:  DefaultOutputPath,
		},
		Debug: false,
	}
}

func (o *IMUCapDesc) Parse(cmd *cobra.Command) error {
	vipCfg := viper.New()
	vipCfg.SetDefault("serial.name", DefaultSerialName)
	vipCfg.SetDefault("serial.baud", DefaultSerialBaud)
	vipCfg.SetDefault("serial.timeout", DefaultReadTimeoutS)
	vipCfg.SetDefault("capture.samples", DefaultSamplesPerGesture)
	vipCfg.SetDefault("capture.output", DefaultOutputPath)
	vipCfg.SetDefault("debug", false)

	if configFileCmd, err := cmd.Flags().GetString("config"); err == nil && configFileCmd != "" {
		vipCfg.SetConfigFile(configFileCmd)
	} else {
		configFileEnv := os.Getenv("IMUCAP_CONFIG")
		if configFileEnv != "" {
			vipCfg.SetConfigFile(configFileEnv)
		} else {
			vipCfg.SetConfigName(DefaultConfigName)
			vipCfg.SetConfigType("yaml")
			vipCfg.AddConfigPath(DefaultConfigSearchPath0)
			vipCfg.AddConfigPath(DefaultConfigSearchPath1)
			vipCfg.AddConfigPath(DefaultConfigSearchPath2)
			vipCfg.AddConfigPath(DefaultConfigSearchPath3)
		}
	}

	vipCfg.SetEnvPrefix(DefaultAppName)
	vipCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vipCfg.AutomaticEnv()

	_ = vipCfg.BindPFlag("serial.name", cmd.Flags().Lookup("port"))
	_ = vipCfg.BindPFlag("serial.baud", cmd.Flags().Lookup("baud"))
	_ = vipCfg.BindPFlag("capture.samples", cmd.Flags().Lookup("samples"))
	_ = vipCfg.BindPFlag("capture.output", cmd.Flags().Lookup("output"))
	_ = vipCfg.BindPFlag("debug", cmd.Flags().Lookup("debug"))

	// If a config file is found, read it in.
	if err := vipCfg.ReadInConfig(); err == nil {
		log.Debugln("using config file:", vipCfg.ConfigFileUsed())
	} else {
		log.Debugln(err)
	}

	if err := vipCfg.Unmarshal(&o.Opt); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	o.Viper = vipCfg
	return nil
}

func (o *IMUCapDesc) PostParse() {
	if o.Opt.Debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func (o *IMUCapDesc) SaveConfig() error {
	if o.Viper == nil {
		return errors.New("viper is nil")
	}
	buffer, err := yaml.Marshal(o.Opt)
	if err != nil {
		return err
	}
	return os.WriteFile(o.Viper.ConfigFileUsed(), buffer, 0644)
}

// InitCfg prepares a configuration template for the application
func InitCfg(cmd *cobra.Command, _ []string) error {
	printFlag, _ := cmd.Flags().GetBool("print")
	destPath, _ := cmd.Flags().GetString("dest")
	overwriteFlag, _ := cmd.Flags().GetBool("yes")

	desc := NewIMUCapDesc()
	err := desc.Parse(cmd)
	if err != nil {
		log.Errorln(err)
		return err
	}

	if printFlag {
		configBuffer, _ := yaml.Marshal(desc.Opt)
		fmt.Println(string(configBuffer))
	} else {
		utils.DumpOption(desc.Opt, destPath, overwriteFlag)
	}
	return nil
}
