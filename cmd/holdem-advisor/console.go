package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"

	"github.com/lox/holdem-advisor/internal/deck"
	"github.com/lox/holdem-advisor/internal/engine"
	"github.com/lox/holdem-advisor/internal/game"
)

type consoleStyles struct {
	Prompt    lipgloss.Style
	Info      lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Pot       lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
}

// Console is the interactive human agent: it renders the table state
// and reads an action from a readline prompt.
type Console struct {
	rl     *readline.Instance
	styles consoleStyles
}

// NewConsole sets up the readline prompt with action completion.
func NewConsole() (*Console, error) {
	styles := consoleStyles{
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Pot:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		RedCard:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		BlackCard: lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
	}

	completer := readline.NewPrefixCompleter(
		readline.PcItem("fold"),
		readline.PcItem("call"),
		readline.PcItem("raise"),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          styles.Prompt.Render("holdem> "),
		HistoryFile:     "/tmp/holdem_advisor_history",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, err
	}

	return &Console{rl: rl, styles: styles}, nil
}

// Close closes the readline instance.
func (c *Console) Close() error {
	return c.rl.Close()
}

// Act renders the decision point and reads an action. Parse failures
// re-prompt locally; an interrupted or closed prompt aborts the hand.
func (c *Console) Act(ctx context.Context, prompt engine.Prompt) (game.Action, int, error) {
	if prompt.Err != nil {
		fmt.Println(c.styles.Error.Render(fmt.Sprintf("  %v", prompt.Err)))
	} else {
		c.renderState(prompt)
	}

	for {
		line, err := c.rl.Readline()
		if err != nil {
			return game.Fold, 0, fmt.Errorf("reading action: %w", err)
		}

		action, amount, err := c.parseLine(line, prompt)
		if err != nil {
			fmt.Println(c.styles.Error.Render(fmt.Sprintf("  %v", err)))
			continue
		}
		return action, amount, nil
	}
}

func (c *Console) parseLine(line string, prompt engine.Prompt) (game.Action, int, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return game.Fold, 0, fmt.Errorf("enter fold, call or raise [amount]")
	}

	switch fields[0] {
	case "f", "fold":
		return game.Fold, 0, nil
	case "c", "call", "check":
		return game.Call, 0, nil
	case "r", "raise":
		amount := prompt.MinRaise
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return game.Fold, 0, fmt.Errorf("invalid raise amount %q", fields[1])
			}
			amount = n
		}
		return game.Raise, amount, nil
	default:
		return game.Fold, 0, fmt.Errorf("unknown action %q", fields[0])
	}
}

func (c *Console) renderState(prompt engine.Prompt) {
	fmt.Println()
	fmt.Printf("%s  %s\n", c.styles.Info.Render(fmt.Sprintf("[%s]", prompt.Street)),
		c.styles.Pot.Render(fmt.Sprintf("pot %d", prompt.Pot)))
	fmt.Printf("  board: %s\n", c.renderCards(prompt.Board))
	fmt.Printf("  hole:  %s\n", c.renderCards(prompt.Hole))
	fmt.Printf("  stack %d, to call %d, min raise %d\n", prompt.Stack, prompt.Owed, prompt.MinRaise)
}

func (c *Console) renderCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return c.styles.Info.Render("--")
	}
	parts := make([]string, len(cards))
	for i, card := range cards {
		if card.IsRed() {
			parts[i] = c.styles.RedCard.Render(card.String())
		} else {
			parts[i] = c.styles.BlackCard.Render(card.String())
		}
	}
	return strings.Join(parts, " ")
}

// ShowResult prints the settled hand.
func (c *Console) ShowResult(result *engine.HandResult) {
	fmt.Println()
	fmt.Printf("  board: %s\n", c.renderCards(result.Round.Board))

	for _, seat := range result.Winners {
		actor := result.Round.Actors[seat]
		line := fmt.Sprintf("  %s wins %d", actor.Name, result.Payouts[indexOf(result.Winners, seat)])
		if eval, ok := result.Showdown[seat]; ok {
			line += fmt.Sprintf(" with %s (%s)", eval.Description, deck.Notation(actor.Hole))
		} else {
			line += " uncontested"
		}
		fmt.Println(c.styles.Success.Render(line))
	}

	for seat, eval := range result.Showdown {
		if containsInt(result.Winners, seat) {
			continue
		}
		actor := result.Round.Actors[seat]
		fmt.Println(c.styles.Info.Render(
			fmt.Sprintf("  %s shows %s (%s)", actor.Name, eval.Description, deck.Notation(actor.Hole))))
	}
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return 0
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
