package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/fydkg/dkg"
	"github.com/f3rmion/fydkg/internal/runner"
)

// runCmd simulates a complete key generation run in one process.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a complete key generation in memory",
	Long: `Run all phases for n simulated parties and print the joint public key.

Every message is encoded with the selected codec and decoded by its
receivers. After the run, t+1 shares are recombined to check that they
match the joint key.

Examples:
  # 2-of-3 on BLS12-381
  fydkg run -t 1 -n 3

  # 3-of-5 on secp256k1 with BLAKE3 commitments and JSON messages
  fydkg run -t 2 -n 5 --curve secp256k1 --hash blake3 --codec json

  # Watch party 2 get caught sending party 3 a bad share
  fydkg run -t 1 -n 3 --tamper-share 2:3`,
	RunE: runRun,
}

func init() {
	flags := runCmd.Flags()
	flags.IntP("threshold", "t", 1, "threshold t; any t+1 parties can use the key")
	flags.IntP("parties", "n", 3, "number of parties n")
	flags.Int("paillier-bits", dkg.DefaultPaillierBits, "Paillier modulus size")
	flags.String("session-id", "", "session identifier (default: derived from the time)")
	flags.Duration("timeout", 5*time.Minute, "abort the run after this long")
	flags.Bool("metrics", false, "print collected metrics after the run")
	flags.String("tamper-share", "", "corrupt one dealt share, as sender:recipient")
	flags.Int("forge-decommit", 0, "make this party reveal a point it did not commit to")

	for _, name := range []string{"threshold", "parties", "paillier-bits", "session-id", "timeout", "metrics"} {
		key := "run." + strings.ReplaceAll(name, "-", "_")
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind %s flag: %v", name, err))
		}
	}
}

func parseShareFault(s string) (*runner.ShareFault, error) {
	if s == "" {
		return nil, nil
	}
	from, to, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("invalid --tamper-share %q, want sender:recipient", s)
	}
	sender, err := strconv.Atoi(from)
	if err != nil {
		return nil, fmt.Errorf("invalid --tamper-share sender: %w", err)
	}
	recipient, err := strconv.Atoi(to)
	if err != nil {
		return nil, fmt.Errorf("invalid --tamper-share recipient: %w", err)
	}
	return &runner.ShareFault{Sender: sender, Recipient: recipient}, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	g, err := groupByName(viper.GetString("curve"))
	if err != nil {
		return err
	}
	h, err := hasherByName(viper.GetString("hash"))
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), viper.GetString("log_format"), viper.GetBool("verbose"))
	if err != nil {
		return err
	}
	tamper, err := parseShareFault(cmd.Flag("tamper-share").Value.String())
	if err != nil {
		return err
	}
	forge, err := cmd.Flags().GetInt("forge-decommit")
	if err != nil {
		return err
	}

	sessionID := viper.GetString("run.session_id")
	if sessionID == "" {
		sessionID = fmt.Sprintf("fydkg-%d", time.Now().UnixNano())
	}

	reg := prometheus.NewRegistry()
	metrics, err := runner.NewMetrics(reg)
	if err != nil {
		return err
	}

	cfg := runner.Config{
		Suite: dkg.NewSuite(g,
			dkg.WithCommitmentHash(h),
			dkg.WithPaillierBits(viper.GetInt("run.paillier_bits")),
		),
		Params: dkg.Parameters{
			Threshold:  viper.GetInt("run.threshold"),
			ShareCount: viper.GetInt("run.parties"),
		},
		Codec:     viper.GetString("codec"),
		SessionID: sessionID,
		Logger:    logger,
		Metrics:   metrics,
		Faults: runner.Faults{
			TamperShare:   tamper,
			ForgeDecommit: forge,
		},
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), viper.GetDuration("run.timeout"))
	defer cancel()

	out := cmd.OutOrStdout()
	outcome, runErr := runner.Run(ctx, cfg)
	if runErr == nil {
		printOutcome(out, cfg, outcome)
	} else if culprits := dkg.Culprits(runErr); len(culprits) > 0 {
		fmt.Fprintf(out, "Run aborted, misbehaving parties: %v\n", culprits)
	}

	if viper.GetBool("run.metrics") {
		if err := printMetrics(out, reg); err != nil {
			return err
		}
	}
	return runErr
}

func printOutcome(w io.Writer, cfg runner.Config, o *runner.Outcome) {
	fmt.Fprintf(w, "Session:     %s\n", cfg.SessionID)
	fmt.Fprintf(w, "Curve:       %s\n", cfg.Suite.Group().Name())
	fmt.Fprintf(w, "Threshold:   %d-of-%d\n", cfg.Params.Threshold+1, cfg.Params.ShareCount)
	fmt.Fprintf(w, "Joint key:   %s\n", hex.EncodeToString(o.PublicKey.Bytes()))
	fmt.Fprintln(w, "Verification shares:")
	for k, res := range o.Results {
		fmt.Fprintf(w, "  %d: %s\n", k+1, hex.EncodeToString(res.VerificationShares[k].Bytes()))
	}
	fmt.Fprintf(w, "Messages:    %d (%d bytes)\n", o.Messages, o.Bytes)
	if err := o.Audit(); err != nil {
		fmt.Fprintf(w, "Audit:       FAILED: %v\n", err)
		return
	}
	fmt.Fprintln(w, "Audit:       ok")
}

func printMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	fmt.Fprintln(w, "Metrics:")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(w, "  %s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Fprintf(w, "  %s{%s} count=%d sum=%.4fs\n", mf.GetName(), strings.Join(labels, ","), h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
	return nil
}
