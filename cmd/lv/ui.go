package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"lifeverse/internal/catalog"
	"lifeverse/internal/game"

	"github.com/fatih/color"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printError(msg string) {
	danger.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func printSeverity(severity, msg string) {
	switch severity {
	case game.SeveritySuccess:
		printSuccess(msg)
	case game.SeverityWarning:
		printWarn(msg)
	case game.SeverityDanger:
		printError(msg)
	default:
		printInfo(msg)
	}
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptInt64(label string, min int64) (int64, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			printWarn("Enter a whole number.")
			continue
		}
		if v < min {
			printWarn(fmt.Sprintf("Value must be >= %d", min))
			continue
		}
		return v, nil
	}
}

func renderStatus(v game.StateView) {
	accent.Printf("\n== LIFE (Year %d, Month %d, Day %d  %02d:%02d) ==\n",
		v.Clock.Year, v.Clock.Month, v.Clock.Day, v.Clock.Hour, v.Clock.Minute)

	fmt.Printf("Age:        %d\n", v.Stats.Age)
	fmt.Printf("Cash:       $%s\n", comma(v.Ledger.Cash))
	fmt.Printf("Bank:       $%s\n", comma(v.Ledger.BankBalance))
	if v.Ledger.LoanBalance > 0 {
		fmt.Printf("Loan:       %s\n", danger.Sprintf("$%s", comma(v.Ledger.LoanBalance)))
	}
	fmt.Printf("Net Worth:  $%s\n", comma(v.NetWorth))

	fmt.Println()
	fmt.Printf("Health:       %s\n", statBar(v.Stats.Health))
	fmt.Printf("Energy:       %s\n", statBar(v.Stats.Energy))
	fmt.Printf("Happiness:    %s\n", statBar(v.Stats.Happiness))
	fmt.Printf("Intelligence: %s\n", statBar(v.Stats.Intelligence))
	fmt.Printf("Reputation:   %s\n", statBar(v.Stats.Reputation))

	fmt.Println()
	job := v.Job
	if job == "" {
		job = "unemployed"
	}
	fmt.Printf("Job:        %s (%d experience)\n", job, v.Experience)
	fmt.Printf("Education:  %s\n", v.Education)
	if v.JailDays > 0 {
		danger.Printf("In jail:    %d days remaining\n", v.JailDays)
	}

	if len(v.Family) > 0 {
		fmt.Println()
		accent.Println("Family")
		for _, r := range v.Family {
			fmt.Printf("  %-10s %s\n", r.Kind, r.Name)
		}
	}

	if n := len(v.Inventory.Vehicles) + len(v.Inventory.Properties) +
		len(v.Inventory.Businesses) + len(v.Inventory.Investments); n > 0 {
		fmt.Println()
		accent.Println("Assets")
		for _, a := range v.Inventory.Vehicles {
			fmt.Printf("  vehicle    %s\n", a.Name)
		}
		for _, a := range v.Inventory.Properties {
			rented := ""
			if a.Rented {
				rented = fmt.Sprintf("  (rented, $%s/mo)", comma(a.Rent))
			}
			fmt.Printf("  property   %s%s\n", a.Name, rented)
		}
		for _, a := range v.Inventory.Businesses {
			fmt.Printf("  business   %-20s $%s/mo\n", a.Name, comma(a.Income))
		}
		for _, a := range v.Inventory.Investments {
			fmt.Printf("  investment %-20s $%s  [%s]\n", a.Name, comma(a.Amount), a.ID)
		}
	}

	if v.PendingEvent != nil {
		fmt.Println()
		warn.Printf("EVENT: %s\n", v.PendingEvent.Title)
		fmt.Println(v.PendingEvent.Description)
		for i, c := range v.PendingEvent.Choices {
			fmt.Printf("  [%d] %s\n", i, c)
		}
		printInfo("Respond with: lv event <number>")
	}
	fmt.Println()
}

func renderLog(notes, activity []game.Entry) {
	accent.Println("\n== NOTIFICATIONS ==")
	if len(notes) == 0 {
		printInfo("Nothing yet.")
	}
	for _, e := range notes {
		printSeverity(e.Severity, e.Message)
	}
	accent.Println("\n== ACTIVITY ==")
	if len(activity) == 0 {
		printInfo("Nothing yet.")
	}
	for _, e := range activity {
		fmt.Println(e.Message)
	}
	fmt.Println()
}

func renderJobs(jobs []catalog.Job) {
	accent.Println("\n== JOBS ==")
	fmt.Printf("%-16s %-24s %10s %8s %6s\n", "ID", "NAME", "SALARY", "ENERGY", "EXP")
	for _, j := range jobs {
		fmt.Printf("%-16s %-24s %10s %8d %6d\n", j.ID, truncate(j.Name, 24), "$"+comma(j.Salary), j.EnergyCost, j.Experience)
	}
	fmt.Println()
}

func renderEducation(tiers []catalog.EducationTier) {
	accent.Println("\n== EDUCATION ==")
	fmt.Printf("%-16s %-24s %10s %6s\n", "ID", "NAME", "COST", "INT")
	for _, t := range tiers {
		fmt.Printf("%-16s %-24s %10s %+6d\n", t.ID, truncate(t.Name, 24), "$"+comma(t.Cost), t.IntelligenceGain)
	}
	fmt.Println()
}

func renderCrimes(crimes []catalog.CrimeSpec) {
	accent.Println("\n== CRIMES ==")
	fmt.Printf("%-12s %-16s %18s %6s %6s %6s\n", "ID", "NAME", "REWARD", "RISK", "JAIL%", "DAYS")
	for _, c := range crimes {
		reward := fmt.Sprintf("$%s-$%s", comma(c.MinReward), comma(c.MaxReward))
		fmt.Printf("%-12s %-16s %18s %5d%% %5d%% %6d\n", c.ID, truncate(c.Name, 16), reward, c.Risk, c.JailChance, c.JailDays)
	}
	fmt.Println()
}

func renderInvestments(specs []catalog.InvestmentSpec) {
	accent.Println("\n== INVESTMENTS ==")
	fmt.Printf("%-8s %-24s %12s %8s %6s\n", "ID", "NAME", "MINIMUM", "RETURN", "RISK")
	for _, s := range specs {
		fmt.Printf("%-8s %-24s %12s %7.1f%% %5d%%\n", s.ID, truncate(s.Name, 24), "$"+comma(s.MinAmount), float64(s.AnnualReturnBps)/100, s.Risk)
	}
	fmt.Println()
}

func renderShop(cat *catalog.Catalog) {
	accent.Println("\n== SHOP ==")
	fmt.Printf("%-6s %-18s %-24s %12s\n", "KIND", "ID", "NAME", "PRICE")
	for _, it := range cat.Items {
		fmt.Printf("%-6s %-18s %-24s %12s\n", "item", it.ID, truncate(it.Name, 24), "$"+comma(it.Price))
	}
	for _, v := range cat.Vehicles {
		fmt.Printf("%-6s %-18s %-24s %12s\n", "car", v.ID, truncate(v.Name, 24), "$"+comma(v.Price))
	}
	for _, p := range cat.Properties {
		fmt.Printf("%-6s %-18s %-24s %12s\n", "home", p.ID, truncate(p.Name, 24), "$"+comma(p.Price))
	}
	for _, b := range cat.Businesses {
		fmt.Printf("%-6s %-18s %-24s %12s\n", "biz", b.ID, truncate(b.Name, 24), "$"+comma(b.Price))
	}
	fmt.Println()
}

func statBar(v int) string {
	filled := v / 10
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
	text := fmt.Sprintf("%s %3d", bar, v)
	switch {
	case v >= 70:
		return success.Sprint(text)
	case v >= 30:
		return warn.Sprint(text)
	default:
		return danger.Sprint(text)
	}
}

func comma(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) > 3 {
		var b strings.Builder
		pre := len(s) % 3
		if pre > 0 {
			b.WriteString(s[:pre])
			b.WriteByte(',')
		}
		for i := pre; i < len(s); i += 3 {
			b.WriteString(s[i : i+3])
			if i+3 < len(s) {
				b.WriteByte(',')
			}
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
