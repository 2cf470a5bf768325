package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Murat2283plus/maliao/internal/transport"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports",
	Long:  `Shows the serial ports on this machine, with USB details where available.`,
	Args:  cobra.NoArgs,
	RunE:  runPorts,
}

func runPorts(_ *cobra.Command, _ []string) error {
	ports, err := transport.ListPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found.")
		return nil
	}

	maxNameLen := len("Port")
	for _, p := range ports {
		maxNameLen = max(maxNameLen, len(p.Name))
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Port", "Device")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "------")
	for _, p := range ports {
		device := "-"
		if p.IsUSB {
			device = fmt.Sprintf("USB %s:%s", p.VID, p.PID)
			if p.Product != "" {
				device += " " + p.Product
			}
			if p.SerialNumber != "" {
				device += " (" + p.SerialNumber + ")"
			}
		}
		fmt.Printf("  %-*s  %s\n", maxNameLen, p.Name, device)
	}
	return nil
}
