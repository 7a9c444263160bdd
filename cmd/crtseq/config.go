package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nwrim/continuous-recognition-task-jsPsych/sequence"
	"github.com/nwrim/continuous-recognition-task-jsPsych/server"
	"github.com/nwrim/continuous-recognition-task-jsPsych/timeline"
	"github.com/nwrim/continuous-recognition-task-jsPsych/verify"
)

const (
	envPrefix         = "CRTSEQ"
	defaultConfigFile = "crtseq.yml"
	defaultFormat     = "json"
	defaultSeeds      = 100
	defaultStimulusMS = 1000
	defaultISIMS      = 1000
)

// appConfig is internal runtime configuration resolved from flags, CRTSEQ_*
// environment variables, an optional YAML file and defaults, in that order.
type appConfig struct {
	TargetNum         int    `mapstructure:"target-num"`
	BlockSize         int    `mapstructure:"block-size"`
	FirstRepeatDelay  int    `mapstructure:"first-repeat-delay"`
	MinRepeatDelay    int    `mapstructure:"min-repeat-delay"`
	VigilanceInterval int    `mapstructure:"vigilance-interval"`
	FixedOrder        bool   `mapstructure:"fixed-order"`
	TargetDir         string `mapstructure:"target-dir"`
	FillerDir         string `mapstructure:"filler-dir"`
	FixationID        string `mapstructure:"fixation-id"`
	FixationPath      string `mapstructure:"fixation-path"`
	Seed              int64  `mapstructure:"seed"`
	Seeds             int    `mapstructure:"seeds"`
	Workers           int    `mapstructure:"workers"`
	StimulusMS        int    `mapstructure:"stim-ms"`
	ISIMS             int    `mapstructure:"isi-ms"`
	Format            string `mapstructure:"format"`
	Out               string `mapstructure:"out"`
	Addr              string `mapstructure:"addr"`
	Manifest          string `mapstructure:"manifest"`
	UseGrid           bool   `mapstructure:"grid"`

	// Axes is read from the config file only.
	Axes verify.Axes `mapstructure:"axes"`

	ConfigPath        string `mapstructure:"-"` // not from config file
}

// params returns the sequence parameters of cfg.
func (cfg appConfig) params() sequence.Params {
	return sequence.Params{
		TargetNum: cfg.TargetNum,
		Schedule: sequence.Schedule{
			BlockSize:         cfg.BlockSize,
			FirstRepeatDelay:  cfg.FirstRepeatDelay,
			MinRepeatDelay:    cfg.MinRepeatDelay,
			VigilanceInterval: cfg.VigilanceInterval,
			FixedOrder:        cfg.FixedOrder,
		},
	}
}

func (cfg appConfig) fixation() sequence.Item {
	path := cfg.FixationPath
	if path == "" {
		path = cfg.FixationID
	}

	return sequence.Item{ID: cfg.FixationID, Path: path}
}

func (cfg appConfig) timing() timeline.Timing {
	return timeline.Timing{
		Stimulus: time.Duration(cfg.StimulusMS) * time.Millisecond,
		ISI:      time.Duration(cfg.ISIMS) * time.Millisecond,
	}
}

// registerFlags declares every configuration key as a flag on fs.
func registerFlags(fs *pflag.FlagSet) {
	fs.Int("target-num", sequence.DefaultTargetNum, "number of target images")
	fs.Int("block-size", sequence.DefaultBlockSize, "trials per block")
	fs.Int("first-repeat-delay", sequence.DefaultFirstRepeatDelay, "blocks before the first repeat")
	fs.Int("min-repeat-delay", sequence.DefaultMinRepeatDelay, "random order: blocks a target waits before it may repeat")
	fs.Int("vigilance-interval", sequence.DefaultVigilanceInterval, "a vigilance trial every N blocks")
	fs.Bool("fixed-order", false, "repeat targets in presentation order")
	fs.String("target-dir", "", "directory of target images")
	fs.String("filler-dir", "", "directory of filler images (default: draw fillers from target-dir)")
	fs.String("fixation-id", sequence.DefaultFixationID, "fixation image filename")
	fs.String("fixation-path", "", "fixation image path served to the runtime (default: fixation-id)")
	fs.Int64("seed", 0, "random seed (0 picks one)")
	fs.Int("seeds", defaultSeeds, "verify: number of seeded runs")
	fs.Int("workers", 0, "verify: concurrent builds (0 = GOMAXPROCS)")
	fs.Int("stim-ms", defaultStimulusMS, "image trial duration in milliseconds")
	fs.Int("isi-ms", defaultISIMS, "fixation trial duration in milliseconds")
	fs.String("format", defaultFormat, "output format: json or yaml")
	fs.String("out", "", "output file, or output directory for manifest (default: stdout)")
	fs.String("addr", server.DefaultAddr, "serve: listen address")
	fs.String("manifest", "", "YAML stimulus manifest; names resolve against target-dir and filler-dir")
	fs.Bool("grid", false, "verify: sweep the axes block of the config file")
}

// grid expands the configured axes. An axis left empty takes the single
// value of the matching scalar setting.
func (cfg appConfig) grid() []sequence.Params {
	a := cfg.Axes
	orOne := func(vals []int, v int) []int {
		if len(vals) == 0 {
			return []int{v}
		}
		return vals
	}
	a.TargetNum = orOne(a.TargetNum, cfg.TargetNum)
	a.BlockSize = orOne(a.BlockSize, cfg.BlockSize)
	a.FirstRepeatDelay = orOne(a.FirstRepeatDelay, cfg.FirstRepeatDelay)
	a.MinRepeatDelay = orOne(a.MinRepeatDelay, cfg.MinRepeatDelay)
	a.VigilanceInterval = orOne(a.VigilanceInterval, cfg.VigilanceInterval)
	a.FixedOrder = a.FixedOrder || cfg.FixedOrder

	return verify.Grid(a)
}

func loadConfig(flags *pflag.FlagSet, configPath string) (appConfig, error) {
	var cfg appConfig

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("target-num", sequence.DefaultTargetNum)
	v.SetDefault("block-size", sequence.DefaultBlockSize)
	v.SetDefault("first-repeat-delay", sequence.DefaultFirstRepeatDelay)
	v.SetDefault("min-repeat-delay", sequence.DefaultMinRepeatDelay)
	v.SetDefault("vigilance-interval", sequence.DefaultVigilanceInterval)
	v.SetDefault("fixed-order", false)
	v.SetDefault("fixation-id", sequence.DefaultFixationID)
	v.SetDefault("seeds", defaultSeeds)
	v.SetDefault("stim-ms", defaultStimulusMS)
	v.SetDefault("isi-ms", defaultISIMS)
	v.SetDefault("format", defaultFormat)
	v.SetDefault("addr", server.DefaultAddr)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return cfg, err
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(defaultConfigFile)
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		// an explicit --config must exist
		if configPath != "" || (!errors.As(err, &configFileNotFound) && !os.IsNotExist(err)) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if cfg.Format != "json" && cfg.Format != "yaml" {
		return cfg, fmt.Errorf("invalid format: %q (want json or yaml)", cfg.Format)
	}
	if cfg.StimulusMS < 0 || cfg.ISIMS < 0 {
		return cfg, fmt.Errorf("invalid timing: stim-ms=%d isi-ms=%d", cfg.StimulusMS, cfg.ISIMS)
	}
	if cfg.FixationID == "" {
		return cfg, errors.New("fixation-id must not be empty")
	}

	return cfg, nil
}
