package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nwrim/continuous-recognition-task-jsPsych/rng"
	"github.com/nwrim/continuous-recognition-task-jsPsych/sequence"
	"github.com/nwrim/continuous-recognition-task-jsPsych/server"
	"github.com/nwrim/continuous-recognition-task-jsPsych/stimuli"
	"github.com/nwrim/continuous-recognition-task-jsPsych/timeline"
	"github.com/nwrim/continuous-recognition-task-jsPsych/verify"
)

// errVerifyFailed is returned when at least one seeded run was invalid.
var errVerifyFailed = errors.New("verification found invalid sequences")

type countsOutput struct {
	Params sequence.Params `json:"params" yaml:"params"`
	Counts sequence.Counts `json:"counts" yaml:"counts"`
	Items  int             `json:"items" yaml:"items"`
}

func (a *app) countsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Print the trial counts for the configured parameters",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			p := a.cfg.params()
			c, err := p.Counts()
			if err != nil {
				return err
			}

			return a.write(countsOutput{Params: p, Counts: c, Items: c.Items()})
		},
	}
}

type buildOutput struct {
	Seed        int64                 `json:"seed" yaml:"seed"`
	Params      sequence.Params       `json:"params" yaml:"params"`
	Counts      sequence.Counts       `json:"counts" yaml:"counts"`
	Session     timeline.Session      `json:"session" yaml:"session"`
	Descriptors []timeline.Descriptor `json:"descriptors" yaml:"-"`
}

func (a *app) buildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Generate one participant sequence from the stimulus directories or a manifest",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			pools, err := a.pools("build")
			if err != nil {
				return err
			}

			seed := a.cfg.Seed
			if seed == 0 {
				seed = rng.New().Int63()
			}
			p := a.cfg.params()
			res, err := sequence.Generate(pools, p, a.cfg.fixation(), sequence.WithSeed(seed))
			if err != nil {
				return err
			}
			if findings := res.Validate(a.cfg.FixationID, verify.ExpectedLags(p.Schedule)...); len(findings) > 0 {
				for _, f := range findings {
					log.Printf("build: %s", f)
				}
				return fmt.Errorf("build: seed %d produced an invalid sequence (%d findings)", seed, len(findings))
			}
			log.Printf("build: seed %d, %d trials", seed, res.Sequence.Len())

			return a.write(buildOutput{
				Seed:        seed,
				Params:      p,
				Counts:      res.Counts,
				Session:     timeline.Encode(res.Sequence),
				Descriptors: timeline.Descriptors(res.Sequence, a.cfg.timing()),
			})
		},
	}
}

func (a *app) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Build and validate many seeded sequences in parallel",
		Long: "Build and validate many seeded sequences in parallel.\n" +
			"Without --target-dir or --manifest a synthetic pool of exactly the required size is used.\n" +
			"With --grid every tuple of the config file's axes block is verified in turn.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			grid := []sequence.Params{a.cfg.params()}
			if a.cfg.UseGrid {
				grid = a.cfg.grid()
				if len(grid) == 0 {
					return errors.New("verify: the axes block yields no valid parameter tuple")
				}
			}
			pools, err := a.verifyPools(grid)
			if err != nil {
				return err
			}

			reports, err := verify.Sweep(cmd.Context(), pools, grid, a.cfg.fixation(), verify.Options{
				Seeds:    a.cfg.Seeds,
				BaseSeed: a.cfg.Seed,
				Workers:  a.cfg.Workers,
			})
			if err != nil {
				return err
			}

			ok := true
			for _, rep := range reports {
				log.Printf("verify: %d runs, %d failures", rep.Runs, len(rep.Failures))
				ok = ok && rep.OK()
			}
			if a.cfg.UseGrid {
				err = a.write(reports)
			} else {
				err = a.write(reports[0])
			}
			if err != nil {
				return err
			}
			if !ok {
				return errVerifyFailed
			}

			return nil
		},
	}
}

// pools reads the stimulus pools from --manifest, or else from the
// configured directories.
func (a *app) pools(cmd string) (sequence.Pools, error) {
	if a.cfg.Manifest != "" {
		m, err := stimuli.ReadManifestFile(a.cfg.Manifest)
		if err != nil {
			return sequence.Pools{}, err
		}

		return m.Pools(a.cfg.TargetDir, a.cfg.FillerDir), nil
	}
	if a.cfg.TargetDir == "" {
		return sequence.Pools{}, fmt.Errorf("%s: --target-dir or --manifest is required", cmd)
	}

	return stimuli.LoadPools(a.cfg.TargetDir, a.cfg.FillerDir)
}

// verifyPools loads the configured pools or synthesizes one shared pool
// large enough for every tuple in grid.
func (a *app) verifyPools(grid []sequence.Params) (sequence.Pools, error) {
	if a.cfg.TargetDir != "" || a.cfg.Manifest != "" {
		return a.pools("verify")
	}
	n := 0
	for _, p := range grid {
		c, err := p.Counts()
		if err != nil {
			return sequence.Pools{}, err
		}
		if c.Items() > n {
			n = c.Items()
		}
	}
	items := make([]sequence.Item, n)
	for i := range items {
		id := fmt.Sprintf("stim_%05d.jpg", i)
		items[i] = sequence.Item{ID: id, Path: id}
	}

	return sequence.Pools{Targets: items}, nil
}

func (a *app) manifestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "List the stimulus directories as stimuli.js (or YAML with --format yaml)",
		Long: "List the stimulus directories as stimuli.js, or as a YAML manifest with --format yaml.\n" +
			"With --out the file is written into that directory instead of stdout.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if a.cfg.TargetDir == "" {
				return errors.New("manifest: --target-dir is required")
			}
			pools, err := stimuli.LoadPools(a.cfg.TargetDir, a.cfg.FillerDir)
			if err != nil {
				return err
			}
			m := stimuli.NewManifest(pools)

			yml := a.cfg.Format == "yaml"
			if a.cfg.Out == "" {
				if yml {
					return m.WriteYAML(a.out)
				}
				return m.WriteJS(a.out)
			}
			write := m.WriteJSFile
			if yml {
				write = m.WriteYAMLFile
			}
			path, err := write(a.cfg.Out)
			if err != nil {
				return err
			}
			log.Printf("manifest: wrote %s (%d targets, %d fillers)", path, len(m.Targets), len(m.Fillers))

			return nil
		},
	}
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve sequences to the presentation runtime over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pools, err := a.pools("serve")
			if err != nil {
				return err
			}

			srv := server.NewServer(server.Config{
				Addr:     a.cfg.Addr,
				Pools:    pools,
				Fixation: a.cfg.fixation(),
				Defaults: a.cfg.params(),
				Timing:   a.cfg.timing(),
			})
			if err := srv.Start(); err != nil {
				return fmt.Errorf("failed to start API server: %w", err)
			}
			defer func() {
				if err := srv.Stop(); err != nil {
					log.Printf("serve: shutdown: %v", err)
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			log.Printf("serve: shutting down")

			return nil
		},
	}
}
