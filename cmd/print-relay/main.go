// print-relay runs on the tablet beside the kitchen printers. It subscribes
// to the printing channel, and fans every print_job out to the configured
// network thermal printers as plain text lines followed by a paper cut. It
// keeps no state: on any connection loss it reconnects with a fixed backoff
// and resumes listening.
package main

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	printerPort    = "9100"
	reconnectDelay = 5 * time.Second
	dialTimeout    = 5 * time.Second
	rulerWidth     = 45
)

// ESC/POS full cut.
var cutPaper = []byte{0x1d, 0x56, 0x00}

var log = logrus.New()

type printJob struct {
	Type     string   `json:"type"`
	Content  []string `json:"content"`
	Printers []string `json:"printers"`
}

func main() {
	log.SetFormatter(&logrus.JSONFormatter{})
	godotenv.Load()

	wsURL := strings.TrimSpace(os.Getenv("PRINT_WS_URL"))
	if wsURL == "" {
		log.Fatal("PRINT_WS_URL is required")
	}

	for {
		listen(wsURL)
		log.WithField("delay", reconnectDelay.String()).Info("reconnecting")
		time.Sleep(reconnectDelay)
	}
}

func listen(wsURL string) {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.WithError(err).Error("connection failed")
		return
	}
	defer conn.Close()
	log.WithField("url", wsURL).Info("connected, waiting for print jobs")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.WithError(err).Error("connection lost")
			return
		}

		var job printJob
		if err := json.Unmarshal(data, &job); err != nil {
			log.WithError(err).Warn("ignoring malformed message")
			continue
		}
		if job.Type != "print_job" {
			continue
		}
		if len(job.Content) == 0 {
			log.Warn("empty print job, nothing to print")
			continue
		}

		for _, ip := range printerIPs(job) {
			if err := printTo(ip, job.Content); err != nil {
				log.WithError(err).WithField("printer", ip).Error("print failed")
			}
		}
	}
}

// printerIPs prefers the payload's list, falling back to the environment.
func printerIPs(job printJob) []string {
	if len(job.Printers) > 0 {
		return job.Printers
	}

	raw := os.Getenv("PRINTER_IPS")
	if raw == "" {
		raw = "192.168.1.100,192.168.1.110"
	}
	var ips []string
	for _, ip := range strings.Split(raw, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func printTo(ip string, content []string) error {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(ip, printerPort), dialTimeout)
	if err != nil {
		return fmt.Errorf("dial printer %s: %w", ip, err)
	}
	defer conn.Close()

	ruler := strings.Repeat("=", rulerWidth)
	var ticket strings.Builder
	ticket.WriteString(ruler + "\n")
	for _, line := range content {
		ticket.WriteString(line + "\n")
	}
	ticket.WriteString(ruler + "\n\n\n")

	if _, err := conn.Write([]byte(ticket.String())); err != nil {
		return fmt.Errorf("write ticket to %s: %w", ip, err)
	}
	if _, err := conn.Write(cutPaper); err != nil {
		return fmt.Errorf("cut paper on %s: %w", ip, err)
	}
	log.WithField("printer", ip).Info("ticket printed")
	return nil
}
