// Command led-relay monitors the vehicle ignition and accessory senses
// and drives the LED power relay, publishing transitions to MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mikelawrence/LED-Relay/internal/gpio"
	"github.com/mikelawrence/LED-Relay/internal/mqtt"
	"github.com/mikelawrence/LED-Relay/internal/relay"
	"github.com/mikelawrence/LED-Relay/internal/status"
	"github.com/mikelawrence/LED-Relay/internal/store"
	"github.com/mikelawrence/LED-Relay/internal/timebase"
	"github.com/mikelawrence/LED-Relay/internal/watchdog"
	"github.com/mikelawrence/LED-Relay/internal/web"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	broker := flag.String("broker", "", "MQTT broker address (overrides config)")
	httpAddr := flag.String("http", "", `HTTP status address (overrides config, "off" disables)`)
	heartbeatMin := flag.Int("heartbeat", -1, "Heartbeat interval in minutes (overrides config, 0 disables)")
	printState := flag.Bool("print-state", false, "Print current input levels and exit")

	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	if *broker != "" {
		cfg.MQTT.Broker = *broker
	}
	switch *httpAddr {
	case "":
	case "off":
		cfg.HTTP.Addr = ""
	default:
		cfg.HTTP.Addr = *httpAddr
	}
	if *heartbeatMin >= 0 {
		cfg.Timing.HeartbeatMinutes = *heartbeatMin
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if err := run(cfg, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg Config, printState bool) error {
	// Initialize GPIO
	io, err := gpio.NewRealIO(cfg.GPIO.Chip, cfg.GPIO.PinIgnition, cfg.GPIO.PinAccessory, cfg.GPIO.RelayPins)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer io.Close()

	ignRaw, err := io.Raw(gpio.Ignition)
	if err != nil {
		return fmt.Errorf("read ignition: %w", err)
	}
	accRaw, err := io.Raw(gpio.Accessory)
	if err != nil {
		return fmt.Errorf("read accessory: %w", err)
	}

	// Print state mode
	if printState {
		fmt.Printf("ignition: %s, accessory: %s\n", status.OnOff(ignRaw), status.OnOff(accRaw))
		return nil
	}

	st := store.NewFileStore(cfg.Store.Path)
	delay, err := st.Read()
	if err != nil {
		log.Printf("read delay store: %v (using default %d min)", err, relay.DefaultDelayMinutes)
		delay = relay.DefaultDelayMinutes
	}

	// The controller is seeded from the raw levels read above, then the
	// alarm and edge handlers are installed. Edges arriving before the
	// handlers are in place are dropped; the first debounced transition
	// after that re-synchronizes the channel records.
	tb := timebase.New()
	ctl := relay.New(tb, tb.Now(), ignRaw, accRaw, delay)

	wake := make(chan struct{}, 1)
	poke := func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	}

	tb.SetHandler(func(id relay.AlarmID) {
		now := tb.Now()
		switch id {
		case relay.AlarmDebounceIgnition, relay.AlarmDebounceAccessory:
			ch, line := relay.Ignition, gpio.Ignition
			if id == relay.AlarmDebounceAccessory {
				ch, line = relay.Accessory, gpio.Accessory
			}
			raw, err := io.Raw(line)
			if err != nil {
				log.Printf("debounce read %s: %v", line, err)
				return
			}
			ctl.HandleDebounce(ch, now, raw)
		case relay.AlarmSecond:
			ctl.HandleSecond(now)
		}
		poke()
	})
	io.SetHandler(func(line gpio.Line) {
		ch := relay.Ignition
		if line == gpio.Accessory {
			ch = relay.Accessory
		}
		ctl.HandleEdge(ch, tb.Now())
		poke()
	})

	// Initialize MQTT
	publisher, err := mqtt.NewRealPublisher(cfg.MQTT.Broker)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	poll := time.Duration(cfg.Timing.PollMs) * time.Millisecond
	heartbeat := time.Duration(cfg.Timing.HeartbeatMinutes) * time.Minute

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:      int64(cfg.Timing.PollMs),
		DebounceMs:  int64(relay.DebounceTime),
		HeartbeatMs: heartbeat.Milliseconds(),
		Broker:      cfg.MQTT.Broker,
		HTTPAddr:    cfg.HTTP.Addr,
		StorePath:   cfg.Store.Path,
	})
	tracker.Update(ctl.Status())
	tracker.SetMQTTConnected(publisher.IsConnected())
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if cfg.HTTP.Addr != "" {
		srv := web.New(cfg.HTTP.Addr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTP.Addr)
	}

	var wd watchdog.Watchdog = watchdog.Noop{}
	if cfg.Watchdog.Device != "" {
		wd = watchdog.NewDevice(cfg.Watchdog.Device)
	}
	if err := wd.Arm(); err != nil {
		log.Printf("arm watchdog: %v", err)
	}
	defer wd.Disarm()

	log.Printf("started: poll=%v broker=%s heartbeat=%v delay=%dmin", poll, cfg.MQTT.Broker, heartbeat, delay)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(ctl, tb, io, st, publisher, publisher, wd, tracker, heartbeat, time.Now, ticker.C, wake, sigCh)
}

// tickSource provides the controller's notion of time.
type tickSource interface {
	Now() relay.Tick
}

func runLoop(ctl *relay.Controller, ticks tickSource, out gpio.Output, st store.Store, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, wd watchdog.Watchdog, tracker *status.Tracker, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, wake <-chan struct{}, sig <-chan os.Signal) error {
	lastHeartbeat := now()

	for {
		select {
		case s := <-sig:
			return shutdown(s, publisher, mqttStatus, tracker)
		case <-tick:
		case <-wake:
		}

		if err := wd.Kick(); err != nil {
			log.Printf("watchdog kick: %v", err)
		}

		t := now()
		d := ctl.Step(ticks.Now())

		if err := out.Set(d.Output); err != nil {
			log.Printf("set relay: %v", err)
		}

		for _, e := range d.Events {
			log.Printf("event: %s (power=%s ignition=%s accessory=%s)",
				e.Type, e.Power, status.OnOff(e.Ignition), status.OnOff(e.Accessory))
			if e.Type == relay.EventDelayProgrammed {
				log.Printf("delay programmed: %d minutes", e.DelayMinutes)
				if err := st.Write(e.DelayMinutes); err != nil {
					log.Printf("persist delay: %v", err)
				}
			}
			if err := publisher.Publish(mqtt.Event{
				Timestamp:    t,
				Type:         string(e.Type),
				Power:        e.Power.String(),
				Ignition:     status.OnOff(e.Ignition),
				Accessory:    status.OnOff(e.Accessory),
				DelayMinutes: e.DelayMinutes,
			}); err != nil {
				log.Printf("publish error: %v", err)
				// Don't crash on publish failure
			}
		}

		// Update status tracker for HTTP consumers
		if tracker != nil {
			tracker.Update(ctl.Status())
			if mqttStatus != nil {
				tracker.SetMQTTConnected(mqttStatus.IsConnected())
			}
		}

		// Check for heartbeat
		if heartbeat > 0 && t.Sub(lastHeartbeat) >= heartbeat {
			lastHeartbeat = t
			if tracker != nil {
				// Refresh network info for heartbeat
				if net := readNetworkInfo(); net != nil {
					tracker.SetNetwork(net)
				}
				snap := tracker.Snapshot()
				hbEvent := mqtt.SystemEvent{
					Timestamp:  snap.Now,
					Event:      "HEARTBEAT",
					RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				} else {
					log.Printf("heartbeat: uptime=%v", snap.Uptime().Truncate(time.Second))
				}
			}
		}

		if d.Sleep == relay.SleepDeep {
			// Nothing periodic runs across the deep ignition-off wait,
			// so the watchdog must be stopped or it would fire.
			if err := wd.Disarm(); err != nil {
				log.Printf("watchdog disarm: %v", err)
			}
			select {
			case s := <-sig:
				return shutdown(s, publisher, mqttStatus, tracker)
			case <-wake:
			}
			if err := wd.Arm(); err != nil {
				log.Printf("watchdog arm: %v", err)
			}
		}
	}
}

func shutdown(s os.Signal, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker) error {
	log.Printf("received %v, shutting down", s)
	signalName := "UNKNOWN"
	if s == syscall.SIGINT {
		signalName = "SIGINT"
	} else if s == syscall.SIGTERM {
		signalName = "SIGTERM"
	}
	event := mqtt.SystemEvent{
		Timestamp: time.Now(),
		Event:     "SHUTDOWN",
		Reason:    signalName,
		Retained:  true,
	}
	if tracker != nil {
		if mqttStatus != nil {
			tracker.SetMQTTConnected(mqttStatus.IsConnected())
		}
		snap := tracker.Snapshot()
		event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
	}
	if err := publisher.PublishSystem(event); err != nil {
		log.Printf("failed to publish shutdown event: %v", err)
	} else {
		log.Printf("published shutdown event")
	}
	return nil
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}
