package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gethiox/ITG3200/internal/pkg/display"
	"github.com/gethiox/ITG3200/internal/pkg/gyro"
	"github.com/gethiox/ITG3200/internal/pkg/logger"
	"github.com/logrusorgru/aurora"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

type opener func() (gyro.Session, error)

// run performs a single measurement and returns process exit code.
func run(ctx context.Context, open opener, cfg Config, stdout io.Writer, log *zap.Logger) int {
	log.Info(fmt.Sprintf("opening %s, device address 0x%02X", gyro.DevicePath, gyro.Address), logger.Debug)
	bus, err := open()
	if err != nil {
		log.Info(fmt.Sprintf("failed to open the bus: %v", err), logger.Error)
		fmt.Fprintln(stdout, "Failed to open the bus.")
		return 1
	}
	defer func() {
		err := bus.Close()
		if err != nil {
			log.Info(fmt.Sprintf("failed to close the bus: %v", err), logger.Warning)
		}
	}()

	sensor := gyro.NewSensor(bus, log)

	err = sensor.Configure()
	if err != nil {
		log.Info(fmt.Sprintf("failed to configure device: %v", err), logger.Error)
		fmt.Fprintln(stdout, "Failed to configure the device.")
		return 1
	}

	err = sensor.Settle(ctx, cfg.Gyro.SettleTime)
	if err != nil {
		log.Info(fmt.Sprintf("interrupted: %v", err), logger.Warning)
		return 1
	}

	sample, err := sensor.Read()
	if err != nil {
		if errors.Is(err, gyro.ErrShortRead) {
			log.Info(err.Error(), logger.Warning)
		} else {
			log.Info(fmt.Sprintf("read failed: %v", err), logger.Warning)
		}
		fmt.Fprintln(stdout, "Error : Input/output Error")
		return 0
	}

	for _, line := range sample.Lines() {
		fmt.Fprintln(stdout, line)
	}
	log.Info(fmt.Sprintf("angular rate [deg/s] %s", sample), logger.Sample)

	if cfg.Screen.Enabled {
		err = display.ShowSample(cfg.Screen, sample)
		if err != nil {
			log.Info(fmt.Sprintf("failed to show sample on screen: %v", err), logger.Warning)
		}
	}
	return 0
}

var (
	configPath = flag.String("config", "", "path to configuration file, embedded defaults are used when empty")
	nocolor    = flag.Bool("nocolor", false, "disable color")
	silent     = flag.Bool("silent", false, "no log output")
	logLevel   = flag.Int("loglevel", 1,
		"logging level, each level enables additional information class (0-4, default: 1)\n"+
			"\navailable options:\n"+
			"0: errors\n"+
			"1: warnings\n"+
			"2: general info\n"+
			"3: angular rate in deg/s\n"+
			"4: debug",
	)
)

func main() {
	flag.Parse()

	level := *logLevel
	if level > logger.SampleLvl {
		level = logger.DebugLvl
	}

	wg := sync.WaitGroup{}
	wg.Add(1)
	go printLogs(&wg, logger.Messages, os.Stderr, aurora.NewAurora(!*nocolor), level, *silent)

	code := func() int {
		cfg, err := LoadConfig(*configPath)
		if err != nil {
			log.Info(fmt.Sprintf("failed to load config: %v", err), logger.Error)
			return 1
		}
		log.Info(fmt.Sprintf("ITG3200 config: %+v", cfg), logger.Debug)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return run(ctx, gyro.Open, cfg, os.Stdout, log)
	}()

	// every log emitting routine is done at this point
	close(logger.Messages)
	wg.Wait()

	os.Exit(code)
}
