package config

import (
	"os"
	"strings"
)

// Fallback addresses for the two kitchen printers, matching the relay's own
// default. A print_job payload may still override the list.
var defaultPrinterIPs = []string{"192.168.1.100", "192.168.1.110"}

func PrinterIPs() []string {
	raw := os.Getenv("PRINTER_IPS")
	if raw == "" {
		return defaultPrinterIPs
	}

	var ips []string
	for _, ip := range strings.Split(raw, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			ips = append(ips, ip)
		}
	}
	if len(ips) == 0 {
		return defaultPrinterIPs
	}
	return ips
}
