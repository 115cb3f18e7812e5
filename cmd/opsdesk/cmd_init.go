package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/caura-labs/opsdesk/internal/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Interactively generate opsdesk.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdInit()
		},
	}
}

// cmdInit runs an interactive wizard to generate opsdesk.yaml.
func cmdInit() error {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return fmt.Errorf("checking stdin: %w", err)
	}
	if fi.Mode()&os.ModeCharDevice == 0 {
		return fmt.Errorf("opsdesk init requires an interactive terminal")
	}

	const configPath = "opsdesk.yaml"
	scanner := bufio.NewScanner(os.Stdin)

	// Overwrite guard.
	if _, err := os.Stat(configPath); err == nil {
		if !promptYesNo(scanner, "opsdesk.yaml already exists. Overwrite?", false) {
			return fmt.Errorf("aborted")
		}
	}

	fmt.Println("Initializing opsdesk.yaml...")

	fmt.Println("\n=== Backend ===")
	baseURL := promptString(scanner, "Backend base URL", "http://localhost:8080")
	if baseURL == "" {
		return fmt.Errorf("backend base URL is required")
	}
	auth := promptYesNo(scanner, "Does the backend require a token?", false)
	timeout := promptString(scanner, "Request timeout", "30s")

	fmt.Println("\n=== Output ===")
	color := promptString(scanner, "Color output (auto/always/never)", "auto")

	data := initData{
		BaseURL: baseURL,
		Auth:    auth,
		Timeout: timeout,
		Color:   color,
	}

	tmpl, err := template.New("opsdesk.yaml").Parse(opsdeskYAMLTemplate)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering template: %w", err)
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	fmt.Printf("\nWrote %s\n", configPath)

	if auth {
		fmt.Fprintf(os.Stderr, "\nopsdesk.yaml references OPSDESK_TOKEN.\n")
		fmt.Fprintf(os.Stderr, "Set it in your shell, in .opsdesk.env, or in %s.\n", config.GlobalEnvPath())
	}

	return nil
}

type initData struct {
	BaseURL string
	Auth    bool
	Timeout string
	Color   string
}

const opsdeskYAMLTemplate = `# opsdesk configuration
# Environment variables are resolved at load time: ${VAR_NAME}

server:
  base_url: {{.BaseURL}}
{{- if .Auth}}
  token: ${OPSDESK_TOKEN}
{{- else}}
  # token: ${OPSDESK_TOKEN}
{{- end}}
  timeout: {{.Timeout}}

output:
  color: {{.Color}}

history:
  dir: .opsdesk/history
  retention: 720h

import:
  workers: 4
`

func promptString(scanner *bufio.Scanner, label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", label, defaultVal)
	} else {
		fmt.Printf("%s: ", label)
	}
	scanner.Scan()
	input := strings.TrimSpace(scanner.Text())
	if input == "" {
		return defaultVal
	}
	return input
}

func promptYesNo(scanner *bufio.Scanner, label string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Printf("%s %s: ", label, hint)
	scanner.Scan()
	input := strings.TrimSpace(strings.ToLower(scanner.Text()))
	if input == "" {
		return defaultYes
	}
	return input == "y" || input == "yes"
}
