package main

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/lbustamante/tl2stm/handle"
	"github.com/lbustamante/tl2stm/internal/config"
)

var (
	configFile   = ""
	workers      = 8
	opsPerWorker = 2000
	writeRatio   = 0.3
)

func init() {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Create a region and run synthetic concurrent transactions against it",
		RunE:  runRun,
	}

	fs := runCmd.Flags()
	fs.StringVar(&configFile, "config-file", configFile, "`file` to load region config from (TOML)")
	fs.IntVar(&workers, "workers", workers, "number of concurrent worker goroutines")
	fs.IntVar(&opsPerWorker, "ops", opsPerWorker, "transactions per worker")
	fs.Float64Var(&writeRatio, "write-ratio", writeRatio, "fraction of transactions that write")

	rootCmd.AddCommand(runCmd)
}

func loadConfig() (config.Config, error) {
	cfg := config.DefaultConfig
	if configFile == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(configFile, &cfg); err != nil {
		return cfg, fmt.Errorf("stmctl: config file: %w", err)
	}
	return cfg, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rh := handle.Create(cfg)
	if rh == handle.InvalidRegion {
		return fmt.Errorf("stmctl: failed to create region")
	}
	defer handle.Destroy(rh)

	base := handle.Start(rh)
	size := handle.Size(rh)
	align := handle.Align(rh)
	words := size / align

	var commits, aborts int64
	var mu sync.Mutex

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(seed))
			local := runWorker(rh, base, align, words, rnd)
			mu.Lock()
			commits += local.commits
			aborts += local.aborts
			mu.Unlock()
		}(time.Now().UnixNano() + int64(w))
	}
	wg.Wait()

	fmt.Printf("commits=%d aborts=%d\n", commits, aborts)
	return nil
}

type workerResult struct {
	commits, aborts int64
}

func runWorker(rh handle.RegionHandle, base uintptr, align, words int, rnd *rand.Rand) workerResult {
	var res workerResult
	buf := make([]byte, align)

	for i := 0; i < opsPerWorker; i++ {
		isWrite := rnd.Float64() < writeRatio
		th := handle.Begin(rh, !isWrite)
		wordIdx := rnd.Intn(words)
		addr := base + uintptr(wordIdx*align)

		if isWrite {
			buf[0] = byte(rnd.Intn(256))
			if !handle.Write(rh, th, buf, align, addr) {
				res.aborts++
				continue
			}
		} else {
			if !handle.Read(rh, th, addr, align, buf) {
				res.aborts++
				continue
			}
		}

		if handle.End(rh, th) {
			res.commits++
		} else {
			res.aborts++
		}
	}
	return res
}
