package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

type DB struct {
	Host string
	Port int
	User string
	Pass string
	Name string
}

type MQ struct {
	Host string
	Port int
	User string
	Pass string
}

type SMS struct {
	SenderID string
}

// Validation mirrors the validation-context options. It is read once at
// startup and passed into the services; nothing mutates it afterwards.
type Validation struct {
	Disabled           bool
	IncludeNonEditable bool
}

type App struct {
	Database   DB
	Rabbit     MQ
	SMS        SMS
	Validation Validation
}

// Load reads a simple two-level YAML config file without external packages.
func Load(path string) (App, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return App{}, err
	}
	var a App
	var cur string
	for _, ln := range strings.Split(string(b), "\n") {
		line := strings.TrimSpace(ln)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, ":") {
			cur = strings.TrimSuffix(line, ":")
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		k := strings.TrimSpace(parts[0])
		v := strings.Trim(strings.TrimSpace(parts[1]), "\"")
		switch cur {
		case "database":
			assignDB(&a.Database, k, v)
		case "rabbitmq":
			assignMQ(&a.Rabbit, k, v)
		case "sms":
			assignSMS(&a.SMS, k, v)
		case "validation":
			assignValidation(&a.Validation, k, v)
		}
	}
	if a.Database.Host == "" || a.Rabbit.Host == "" {
		return App{}, errors.New("invalid config: missing database/rabbitmq host")
	}
	return a, nil
}

func assignDB(d *DB, k, v string) {
	switch k {
	case "host":
		d.Host = v
	case "port":
		d.Port = atoiSafe(v)
	case "user":
		d.User = v
	case "password":
		d.Pass = v
	case "database":
		d.Name = v
	}
}

func assignMQ(m *MQ, k, v string) {
	switch k {
	case "host":
		m.Host = v
	case "port":
		m.Port = atoiSafe(v)
	case "user":
		m.User = v
	case "password":
		m.Pass = v
	}
}

func assignSMS(s *SMS, k, v string) {
	if k == "sender_id" {
		s.SenderID = v
	}
}

func assignValidation(val *Validation, k, v string) {
	switch k {
	case "disabled":
		val.Disabled = v == "true"
	case "include_non_editable":
		val.IncludeNonEditable = v == "true"
	}
}

func atoiSafe(s string) int {
	var n int
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
		}
	}
	return n
}

// FindConfig returns the first config file present from the known locations.
func FindConfig() (string, error) {
	candidates := []string{"config.yaml", "deploy/config.example.yaml"}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}
