package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	cl "lifeverse/internal/cli"
	"lifeverse/internal/config"
	"lifeverse/internal/game"
)

var (
	cfg    config.CLIConfig
	logger *slog.Logger
)

func main() {
	_ = godotenv.Load()
	cfg = config.LoadCLIFromEnv()
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	root := &cobra.Command{
		Use:          "lv",
		Short:        "LifeVerse life simulation game",
		SilenceUsage: true,
	}

	root.AddCommand(
		newStatusCmd(),
		newLogCmd(),
		newWorkCmd(),
		newStudyCmd(),
		newSocializeCmd(),
		newRestCmd(),
		newGymCmd(),
		newGambleCmd(),
		newCrimeCmd(),
		newBankCmd(),
		newShopCmd(),
		newRentCmd(),
		newInvestCmd(),
		newCashoutCmd(),
		newJobCmd(),
		newSchoolCmd(),
		newRelCmd(),
		newBonusCmd(),
		newEventCmd(),
		newAdvanceCmd(),
		newSaveCmd(),
		newLoadCmd(),
		newResetCmd(),
		newTUICmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// withSession opens the save, runs fn, and saves on the way out. Every
// command is one open/act/save cycle, so progress always hits disk.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, sess *cl.Session) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	sess, err := cl.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if err := fn(ctx, sess); err != nil {
		_ = sess.Close(ctx)
		return err
	}
	return sess.Close(ctx)
}

// runAction executes one game action and advances the clock on success. A
// rejected precondition prints the reason and exits cleanly: the game said
// no, the CLI didn't fail.
func runAction(sess *cl.Session, fn func() (string, error)) error {
	msg, err := fn()
	if err != nil {
		if notes := sess.Game.Notifications(1); len(notes) > 0 {
			printWarn(notes[0].Message)
			return nil
		}
		return err
	}
	printSuccess(msg)
	sess.Game.RunTick(cfg.TickMinutes)
	return nil
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show your life at a glance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				renderStatus(sess.Game.Snapshot())
				return nil
			})
		},
	}
}

func newLogCmd() *cobra.Command {
	var n int
	c := &cobra.Command{
		Use:   "log",
		Short: "Show recent notifications and activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				renderLog(sess.Game.Notifications(n), sess.Game.Activity(n))
				return nil
			})
		},
	}
	c.Flags().IntVarP(&n, "count", "n", game.DefaultRecent, "entries to show")
	return c
}

func newWorkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "work",
		Short: "Go to work and earn your salary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				return runAction(sess, sess.Game.Work)
			})
		},
	}
}

func newStudyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "study",
		Short: "Study to raise intelligence",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				return runAction(sess, sess.Game.Study)
			})
		},
	}
}

func newSocializeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "socialize",
		Short:   "Spend time with people",
		Aliases: []string{"social"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				return runAction(sess, sess.Game.Socialize)
			})
		},
	}
}

func newRestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rest",
		Short: "Rest to recover energy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				return runAction(sess, sess.Game.Rest)
			})
		},
	}
}

func newGymCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gym",
		Short: "Work out to raise health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				return runAction(sess, sess.Game.Gym)
			})
		},
	}
}

func newGambleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gamble <amount>",
		Short: "Stake cash on a coin flip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stake, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				return runAction(sess, func() (string, error) {
					return sess.Game.Gamble(stake)
				})
			})
		},
	}
}

func newCrimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crime [id]",
		Short: "List crimes or commit one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				if len(args) == 0 {
					renderCrimes(sess.Game.Catalog().Crimes)
					return nil
				}
				return runAction(sess, func() (string, error) {
					return sess.Game.Crime(args[0])
				})
			})
		},
	}
}

func newBankCmd() *cobra.Command {
	bank := &cobra.Command{
		Use:   "bank",
		Short: "Deposits, withdrawals and loans",
	}
	ops := []struct {
		use, short string
		fn         func(sess *cl.Session, amount int64) (string, error)
	}{
		{"deposit <amount>", "Move cash into the bank", func(sess *cl.Session, v int64) (string, error) { return sess.Game.Deposit(v) }},
		{"withdraw <amount>", "Move bank balance to cash", func(sess *cl.Session, v int64) (string, error) { return sess.Game.Withdraw(v) }},
		{"loan <amount>", "Borrow against your cash", func(sess *cl.Session, v int64) (string, error) { return sess.Game.TakeLoan(v) }},
		{"repay <amount>", "Pay down your loan", func(sess *cl.Session, v int64) (string, error) { return sess.Game.RepayLoan(v) }},
	}
	for _, op := range ops {
		op := op
		bank.AddCommand(&cobra.Command{
			Use:   op.use,
			Short: op.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				amount, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid amount %q", args[0])
				}
				return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
					return runAction(sess, func() (string, error) {
						return op.fn(sess, amount)
					})
				})
			},
		})
	}
	return bank
}

func newShopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy [id]",
		Short: "Browse the shop or buy by id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				if len(args) == 0 {
					renderShop(sess.Game.Catalog())
					return nil
				}
				id := args[0]
				cat := sess.Game.Catalog()
				return runAction(sess, func() (string, error) {
					if _, ok := cat.ItemByID(id); ok {
						return sess.Game.BuyItem(id)
					}
					if _, ok := cat.VehicleByID(id); ok {
						return sess.Game.BuyVehicle(id)
					}
					if _, ok := cat.PropertyByID(id); ok {
						return sess.Game.BuyProperty(id)
					}
					return sess.Game.StartBusiness(id)
				})
			})
		},
	}
}

func newRentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rent <property-id>",
		Short: "Toggle renting out a property you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				return runAction(sess, func() (string, error) {
					return sess.Game.ToggleRent(args[0])
				})
			})
		},
	}
}

func newInvestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invest [id] [amount]",
		Short: "List investments or open a position",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				if len(args) == 0 {
					renderInvestments(sess.Game.Catalog().Investments)
					return nil
				}
				var amount int64
				var err error
				if len(args) == 2 {
					amount, err = strconv.ParseInt(args[1], 10, 64)
					if err != nil {
						return fmt.Errorf("invalid amount %q", args[1])
					}
				} else {
					amount, err = promptInt64("Amount", 1)
					if err != nil {
						return err
					}
				}
				return runAction(sess, func() (string, error) {
					return sess.Game.Invest(args[0], amount)
				})
			})
		},
	}
}

func newCashoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cashout <position-id>",
		Short: "Liquidate an investment position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				return runAction(sess, func() (string, error) {
					return sess.Game.CashOut(args[0])
				})
			})
		},
	}
}

func newJobCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "job [id]",
		Short: "List jobs or apply for one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				if len(args) == 0 {
					renderJobs(sess.Game.Catalog().Jobs)
					return nil
				}
				return runAction(sess, func() (string, error) {
					return sess.Game.ApplyForJob(args[0])
				})
			})
		},
	}
}

func newSchoolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "school [id]",
		Short: "List programs or enroll in one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				if len(args) == 0 {
					renderEducation(sess.Game.Catalog().Education)
					return nil
				}
				return runAction(sess, func() (string, error) {
					return sess.Game.Enroll(args[0])
				})
			})
		},
	}
}

func newRelCmd() *cobra.Command {
	rel := &cobra.Command{
		Use:   "rel",
		Short: "Relationships and family",
	}
	ops := []struct {
		use, short string
		fn         func(sess *cl.Session) (string, error)
	}{
		{"meet", "Meet someone new", func(sess *cl.Session) (string, error) { return sess.Game.Meet() }},
		{"date", "Take someone on a date", func(sess *cl.Session) (string, error) { return sess.Game.Date() }},
		{"marry", "Get married", func(sess *cl.Session) (string, error) { return sess.Game.Marry() }},
		{"child", "Have a child", func(sess *cl.Session) (string, error) { return sess.Game.HaveChild() }},
	}
	for _, op := range ops {
		op := op
		rel.AddCommand(&cobra.Command{
			Use:   op.use,
			Short: op.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
					return runAction(sess, func() (string, error) {
						return op.fn(sess)
					})
				})
			},
		})
	}
	return rel
}

func newBonusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bonus",
		Short: "Claim the daily bonus",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				return runAction(sess, sess.Game.ClaimDailyBonus)
			})
		},
	}
}

func newEventCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "event [choice]",
		Short: "Show or answer the pending event",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				if len(args) == 0 {
					def, ok := sess.Game.PendingChoices()
					if !ok {
						printInfo("No event waiting for you.")
						return nil
					}
					warn.Printf("\n%s\n", def.Title)
					fmt.Println(def.Description)
					for i, c := range def.Choices {
						fmt.Printf("  [%d] %s\n", i, c.Text)
					}
					fmt.Println()
					return nil
				}
				choice, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid choice %q", args[0])
				}
				return runAction(sess, func() (string, error) {
					return sess.Game.ResolveEvent(choice)
				})
			})
		},
	}
}

func newAdvanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advance <minutes>",
		Short: "Let game time pass",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[0])
			if err != nil || minutes <= 0 {
				return fmt.Errorf("invalid minutes %q", args[0])
			}
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				sess.Game.RunTick(minutes)
				renderStatus(sess.Game.Snapshot())
				return nil
			})
		},
	}
}

func newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Write the current state to disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				if err := sess.Game.Save(ctx); err != nil {
					return err
				}
				printSuccess("Game saved.")
				return nil
			})
		},
	}
}

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Reload the state from disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				if err := sess.Game.Load(ctx); err != nil {
					return err
				}
				printSuccess("Game loaded.")
				renderStatus(sess.Game.Snapshot())
				return nil
			})
		},
	}
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Abandon this life and start over",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := promptRequired("Type 'yes' to confirm reset")
			if err != nil {
				return err
			}
			if ok != "yes" {
				printInfo("Reset cancelled.")
				return nil
			}
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				if err := sess.Wipe(ctx); err != nil {
					return err
				}
				sess.Game.Reset()
				printSuccess("New life started. Good luck!")
				return nil
			})
		},
	}
}

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Play in a live dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, sess *cl.Session) error {
				return runTUI(ctx, sess)
			})
		},
	}
}
