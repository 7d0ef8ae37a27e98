package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard asks for the handful of settings that differ between installs
// and saves the resulting config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Configuring the iDepositBox management console.")
	fmt.Println()

	cfg := DefaultConfig()

	hostPrompt := promptui.Prompt{
		Label:   "Bind host",
		Default: cfg.BindHost,
	}
	host, err := hostPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("bind host: %w", err)
	}
	cfg.BindHost = host

	portPrompt := promptui.Prompt{
		Label:    "Port",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	pagesPrompt := promptui.Prompt{
		Label:   "Directory with page fragments",
		Default: cfg.PagesDir,
	}
	pagesDir, err := pagesPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("pages dir: %w", err)
	}
	cfg.PagesDir = pagesDir

	levelPrompt := promptui.Select{
		Label: "Log level",
		Items: []string{string(LogInfo), string(LogDebug), string(LogWarn), string(LogError)},
	}
	_, level, err := levelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg.LogLevel = LogLevel(level)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// validatePort is the promptui validator for the port prompt.
func validatePort(s string) error {
	p, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if p < 1 || p > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
