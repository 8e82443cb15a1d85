package server

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tarm/serial"
)

// listSerialPorts lists candidate serial ports depending on the platform
func listSerialPorts() []string {
	var ports []string
	switch runtime.GOOS {
	case "windows":
		for i := 1; i <= 256; i++ {
			ports = append(ports, fmt.Sprintf("COM%d", i))
		}
	case "linux":
		// On Linux, USB serial adapters show up as /dev/ttyUSB* or /dev/ttyACM*
		files, err := os.ReadDir("/dev")
		if err != nil {
			log.Errorln("Error reading directory:", err)
		}
		for _, file := range files {
			name := file.Name()
			if strings.HasPrefix(name, "ttyUSB") || strings.HasPrefix(name, "ttyACM") {
				ports = append(ports, "/dev/"+name)
			}
		}
	case "darwin":
		// On MacOS, serial ports are usually named /dev/tty.*
		files, err := os.ReadDir("/dev")
		if err != nil {
			log.Fatal(err)
		}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			name := file.Name()
			if strings.HasPrefix(name, "tty.") {
				ports = append(ports, "/dev/"+name)
			}
		}
	default:
		log.Fatalf("unsupported platform: %s", runtime.GOOS)
	}
	return ports
}

// testPort opens the port at the configured rate and checks whether the
// sketch is printing anything.
func testPort(portName string, baud int) bool {
	c := &serial.Config{Name: portName, Baud: baud, ReadTimeout: time.Second * 2}
	s, err := serial.OpenPort(c)
	if err != nil {
		return false
	}
	fmt.Print(".")
	defer func() { _ = s.Close() }()

	buffer := make([]byte, 256)
	n, _ := s.Read(buffer)
	return n > 0
}

// ProbeSensor scans the platform serial ports for a device that is
// emitting data at the configured baud rate.
func (a *mainApp) ProbeSensor() error {
	log.Infoln("Probing serial devices...")
	ports := listSerialPorts()
	var validPorts []string

	for _, portName := range ports {
		if testPort(portName, a.opt.Serial.Baud) {
			validPorts = append(validPorts, portName)
		}
	}
	fmt.Println()

	if len(validPorts) == 0 {
		return errors.New("no responsive serial ports found")
	}
	log.Infof("Found %d responsive serial ports:", len(validPorts))
	for _, v := range validPorts {
		fmt.Printf("- %s\n", strings.TrimSpace(v))
	}
	return nil
}
