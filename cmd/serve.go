package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	sim "github.com/portsim/portsim/sim"
	"github.com/portsim/portsim/sim/observe"
)

var (
	serveFlags   simFlags
	listenAddr   string        // HTTP listen address
	speed        float64       // Simulated ticks per real millisecond
	frame        time.Duration // Real time between snapshots
	exitWhenDone bool          // Stop serving once the run finishes
)

// serveCmd runs the simulation in real time and streams it to browsers
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the port simulation in real time and stream snapshots over WebSocket",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := serveFlags.buildConfig(cmd.Flags())
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if speed <= 0 {
			logrus.Fatalf("--speed must be > 0, got %v", speed)
		}
		if frame <= 0 {
			logrus.Fatalf("--frame must be > 0, got %v", frame)
		}

		s, err := sim.NewSimulator(cfg, sim.WithHUD(sim.DefaultHUDLines))
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		hub := observe.NewHub(logrus.WithField("run", s.RunID))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := serve(ctx, stop, s, hub); err != nil {
			logrus.Fatalf("Serve failed: %v", err)
		}
		s.Metrics.Print()
	},
}

// serve runs the paced simulation, the hub and the HTTP server until ctx is
// cancelled (or, with --exit-when-done, until the run finishes). On
// cancellation spawning stops and in-flight ships are drained before the
// server shuts down. Queued ships no pier can serve are abandoned.
func serve(ctx context.Context, stop context.CancelFunc, s *sim.Simulator, hub *observe.Hub) error {
	g, gctx := errgroup.WithContext(ctx)
	hubCtx, cancelHub := context.WithCancel(context.Background())
	defer cancelHub()
	simDone := make(chan struct{})

	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           observe.NewRouter(hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		return hub.Run(hubCtx)
	})
	g.Go(func() error {
		logrus.Infof("Serving port simulation on %s", listenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer close(simDone)
		paceSimulation(gctx, s, hub, frame, speed)
		if exitWhenDone {
			stop()
		} else {
			logrus.Info("Simulation finished; serving final snapshot until interrupted")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		<-simDone
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		cancelHub()
		return err
	})
	return g.Wait()
}

// paceSimulation advances s in step with the wall clock, speed simulated
// ticks per real millisecond, publishing a snapshot every frame. It returns
// when the run reaches its horizon or drains. Cancelling ctx stops spawning
// and drains the remaining ships without pacing; queued ships whose type no
// pier can serve are left behind and counted in Metrics.AbandonedShips.
func paceSimulation(ctx context.Context, s *sim.Simulator, hub *observe.Hub, frame time.Duration, speed float64) {
	publish := func() {
		if err := hub.Publish(s.Snapshot()); err != nil {
			logrus.Warnf("[tick %07d] publish snapshot: %v", s.Clock, err)
		}
	}
	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	start, base := time.Now(), s.Clock
	publish()

	for {
		select {
		case <-ctx.Done():
			s.StopSpawning()
			s.Run()
			publish()
			return
		case <-ticker.C:
			elapsed := float64(time.Since(start)) / float64(time.Millisecond)
			s.RunUntil(base + int64(elapsed*speed))
			if s.Clock >= s.Horizon || s.Idle() {
				s.Run()
				publish()
				return
			}
			publish()
		}
	}
}

func init() {
	serveFlags.register(serveCmd.Flags())
	serveCmd.Flags().StringVar(&listenAddr, "addr", ":8080", "HTTP listen address")
	serveCmd.Flags().Float64Var(&speed, "speed", 1.0, "Simulation speed (1 = real time)")
	serveCmd.Flags().DurationVar(&frame, "frame", 50*time.Millisecond, "Interval between published snapshots")
	serveCmd.Flags().BoolVar(&exitWhenDone, "exit-when-done", false, "Shut down once the simulation finishes")

	rootCmd.AddCommand(serveCmd)
}
