package main

import (
	"fmt"
	"os/exec"
	"strings"
)

// ServiceController restarts the proxy service after configuration changes.
// Restart failures are reported to the user but never fatal and never
// retried.
type ServiceController interface {
	// Name describes the mechanism for log output.
	Name() string
	// Restart asks the init system to restart the named service.
	Restart(service string) error
}

type systemdController struct{}

func (systemdController) Name() string { return "systemd" }

func (systemdController) Restart(service string) error {
	out, err := exec.Command("systemctl", "restart", service).CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl restart %s: %v: %s", service, err, strings.TrimSpace(string(out)))
	}
	return nil
}

type sysvController struct{}

func (sysvController) Name() string { return "sysvinit" }

func (sysvController) Restart(service string) error {
	out, err := exec.Command("service", service, "restart").CombinedOutput()
	if err != nil {
		return fmt.Errorf("service %s restart: %v: %s", service, err, strings.TrimSpace(string(out)))
	}
	return nil
}

type noopController struct{}

func (noopController) Name() string { return "none" }

func (noopController) Restart(service string) error {
	return fmt.Errorf("no service manager available for %s", service)
}

// DetectController probes the service managers on PATH. systemctl wins over
// the generic service command; with neither present every restart degrades
// to a manual-restart hint.
func DetectController() ServiceController {
	if _, err := exec.LookPath("systemctl"); err == nil {
		return systemdController{}
	}
	if _, err := exec.LookPath("service"); err == nil {
		return sysvController{}
	}
	return noopController{}
}
