package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	"github.com/andrescamacho/bakerysim-go/internal/domain/round"
	"github.com/andrescamacho/bakerysim-go/internal/infrastructure/config"
)

// resolveSessionID resolves the session from flags or defaults
// Priority: --session flag > user config default
func resolveSessionID() (string, error) {
	if sessionID != "" {
		return sessionID, nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return "", fmt.Errorf("no session specified and failed to load user config: %w", err)
	}

	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return "", fmt.Errorf("no session specified and failed to load user config: %w", err)
	}

	if userCfg.DefaultSession != "" {
		return userCfg.DefaultSession, nil
	}

	return "", fmt.Errorf("no session specified: use --session, or start one with 'bakery new'")
}

// rememberSession stores id as the default session for later commands
func rememberSession(id string) {
	handler, err := config.NewUserConfigHandler()
	if err != nil {
		fmt.Printf("Warning: could not remember session: %v\n", err)
		return
	}
	if err := handler.SetDefaultSession(id); err != nil {
		fmt.Printf("Warning: could not remember session: %v\n", err)
	}
}

// parseOrder parses "product=qty" pairs
func parseOrder(args []string) (map[string]int, error) {
	order := make(map[string]int, len(args))
	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid order item %q (want product=quantity)", arg)
		}
		qty, err := strconv.Atoi(parts[1])
		if err != nil || qty < 0 {
			return nil, fmt.Errorf("invalid quantity in %q", arg)
		}
		order[parts[0]] += qty
	}
	return order, nil
}

// formatMoney renders currency with a dollar sign and thousands separators
func formatMoney(amount int) string {
	if amount < 0 {
		return "-$" + addThousandsSeparator(-amount)
	}
	return "$" + addThousandsSeparator(amount)
}

func formatSigned(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func printStatus(st game.Status) {
	fmt.Printf("Session:       %s (%s)\n", st.SessionID, st.PlayerName)
	fmt.Printf("Round:         %d\n", st.Round)
	fmt.Printf("Status:        %s\n", st.Signal.Description())
	if st.Signal == round.SignalEventInProgress && st.Stage != nil {
		fmt.Printf("Event:         %d/%d (%s)\n", st.EventsCompleted+1, st.EventsPerRound, st.Stage.String())
	}
	if st.RegionType != "" {
		fmt.Printf("Location:      %s / %s (x%.2f)\n", st.RegionType, st.District, st.Coefficient)
	}
	fmt.Printf("Currency:      %s\n", formatMoney(st.Resources.Currency))
	fmt.Printf("Satisfaction:  %d\n", st.Resources.Satisfaction)
	fmt.Printf("Reputation:    %d\n", st.Resources.Reputation)

	if len(st.Inventory) > 0 {
		ids := make([]string, 0, len(st.Inventory))
		for id := range st.Inventory {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		parts := make([]string, 0, len(ids))
		for _, id := range ids {
			parts = append(parts, fmt.Sprintf("%s=%d", id, st.Inventory[id]))
		}
		fmt.Printf("Inventory:     %s\n", strings.Join(parts, " "))
	}
}
