// framedump decodes dongle response frames from hex dumps, one frame per
// argument or stdin line. Handy when poking at a dongle over a serial
// console.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/tapware/touchlink/internal/protocol"
)

func main() {
	inputs := os.Args[1:]
	if len(inputs) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			inputs = append(inputs, scanner.Text())
		}
	}

	exit := 0
	for _, raw := range inputs {
		if err := dump(raw); err != nil {
			fmt.Fprintf(os.Stderr, "framedump: %q: %v\n", raw, err)
			exit = 1
		}
	}
	os.Exit(exit)
}

func dump(raw string) error {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', ':', ',':
			return -1
		}
		return r
	}, strings.TrimPrefix(strings.TrimSpace(raw), "0x"))
	if cleaned == "" {
		return nil
	}

	frame, err := hex.DecodeString(cleaned)
	if err != nil {
		return fmt.Errorf("bad hex: %w", err)
	}

	resp, err := protocol.Decode(frame)
	if err != nil {
		return err
	}

	switch r := resp.(type) {
	case protocol.Status:
		fmt.Printf("status\tcode=%s original_cmd=%#02x\n", r.Code, byte(r.Command))
	case protocol.Pong:
		fmt.Println("pong")
	case protocol.Info:
		fmt.Printf("info\tversion=%d.%d usb=%t session=%t uptime=%ds\n",
			r.VersionMajor, r.VersionMinor, r.USBConnected, r.SessionActive, r.UptimeSeconds)
	case protocol.PinResult:
		fmt.Printf("pin\tsuccess=%t attempts_left=%d\n", r.Success, r.AttemptsLeft)
	case protocol.Name:
		fmt.Printf("name\t%q\n", r.Name)
	case protocol.GpioState:
		fmt.Printf("gpio\tled=%08b relay=%08b din=%08b ain0=%d ain1=%d\n",
			r.Led, r.Relay, r.Din, r.Ain0, r.Ain1)
	case protocol.Unknown:
		fmt.Printf("unknown\ttype=%#02x\n", r.Raw)
	}
	return nil
}
