package checks

import (
	"fmt"

	"git.home.luguber.info/inful/paperbuild/internal/config"
)

// ForConfig instantiates the configured checks in their configured order.
func ForConfig(cfg *config.Config) ([]Check, error) {
	var list []Check
	for _, name := range cfg.Checks.Order {
		switch name {
		case config.CheckHealthyBand:
			list = append(list, NewHealthyBandCheck(cfg.Checks))
		case config.CheckSpin2Structure:
			list = append(list, NewSpin2Check(cfg.Checks))
		default:
			// Load validates the order; this guards programmatic construction.
			return nil, fmt.Errorf("unknown check %q", name)
		}
	}
	return list, nil
}
