// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	sid := strings.TrimSpace(os.Getenv("TWILIO_ACCOUNT_SID"))
	token := strings.TrimSpace(os.Getenv("TWILIO_AUTH_TOKEN"))
	from := strings.TrimSpace(os.Getenv("TWILIO_FROM"))
	to := strings.TrimSpace(os.Getenv("NOTIFY_TO"))
	addr := strings.TrimSpace(os.Getenv("ADDR"))
	stateDB := strings.TrimSpace(os.Getenv("STATE_DB_PATH"))
	keys := strings.TrimSpace(os.Getenv("API_KEYS"))

	if sid == "" {
		fail("TWILIO_ACCOUNT_SID is empty (no calls will be placed).")
	}
	if !strings.HasPrefix(sid, "AC") {
		warn("TWILIO_ACCOUNT_SID does not start with AC; double-check the value.")
	}
	if token == "" {
		fail("TWILIO_AUTH_TOKEN is empty (provider requests will 401).")
	}
	if from == "" {
		fail("TWILIO_FROM is empty (no verified sender number).")
	}
	if to == "" {
		fail("NOTIFY_TO is empty (nobody to call).")
	}
	for name, v := range map[string]string{"TWILIO_FROM": from, "NOTIFY_TO": to} {
		if !strings.HasPrefix(v, "+") {
			warn(name + " is not in E.164 form (+15551234567); Twilio may reject it.")
		}
	}

	if addr == "" {
		warn("ADDR is empty; default in your app may be used.")
	} else {
		ok("ADDR=" + addr)
	}

	if stateDB == "" {
		warn("STATE_DB_PATH empty — cooldown state is in-memory and lost on restart.")
	} else {
		ok("STATE_DB_PATH present")
	}

	if keys == "" {
		warn("API_KEYS empty — /check and /test-call are open to anyone who can reach them.")
	} else {
		if strings.Contains(keys, " ") {
			warn("API_KEYS contains spaces; use comma-separated with no spaces, e.g. key1,key2")
		}
		ok("API_KEYS present")
	}

	ok("preflight passed")
}
