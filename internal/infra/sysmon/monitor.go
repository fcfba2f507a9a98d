package sysmon

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

const gb = 1 << 30

// Stats es una muestra del sistema.
type Stats struct {
	PhysicalCores int
	TotalGB       float64
	AvailableGB   float64
	CPUPercent    float64
	RAMPercent    float64
}

// ShouldEnablePerformanceMode aplica los umbrales y devuelve los motivos.
func ShouldEnablePerformanceMode(s Stats) (bool, string) {
	var reasons []string
	// 0 = gopsutil no pudo contar (contenedores, algunas VMs)
	if s.PhysicalCores > 0 && s.PhysicalCores < 4 {
		reasons = append(reasons, fmt.Sprintf("Low CPU cores (%d)", s.PhysicalCores))
	}
	if s.TotalGB < 8 {
		reasons = append(reasons, fmt.Sprintf("Low total RAM (%.1fGB)", s.TotalGB))
	}
	if s.AvailableGB < 2 {
		reasons = append(reasons, fmt.Sprintf("Low available RAM (%.1fGB)", s.AvailableGB))
	}
	if s.CPUPercent > 80 {
		reasons = append(reasons, fmt.Sprintf("High CPU usage (%.1f%%)", s.CPUPercent))
	}
	if s.RAMPercent > 85 {
		reasons = append(reasons, fmt.Sprintf("High RAM usage (%.1f%%)", s.RAMPercent))
	}
	if len(reasons) == 0 {
		return false, "System resources adequate"
	}
	return true, strings.Join(reasons, " | ")
}

func Critical(s Stats) bool {
	return s.RAMPercent > 90 || s.CPUPercent > 95
}

// Sample lee cores, memoria y CPU (una ventana de 1s).
func Sample(ctx context.Context) (Stats, error) {
	var s Stats
	cores, err := cpu.CountsWithContext(ctx, false)
	if err != nil {
		return s, fmt.Errorf("cpu counts: %w", err)
	}
	s.PhysicalCores = cores

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return s, fmt.Errorf("virtual memory: %w", err)
	}
	s.TotalGB = float64(vm.Total) / gb
	s.AvailableGB = float64(vm.Available) / gb
	s.RAMPercent = vm.UsedPercent

	pct, err := cpu.PercentWithContext(ctx, time.Second, false)
	if err != nil {
		return s, fmt.Errorf("cpu percent: %w", err)
	}
	if len(pct) > 0 {
		s.CPUPercent = pct[0]
	}
	return s, nil
}

// Monitor mantiene el modo rendimiento al día.
type Monitor struct {
	sample   func(context.Context) (Stats, error)
	interval time.Duration

	perf     atomic.Bool
	critical atomic.Bool

	mu     sync.Mutex
	reason string
	last   Stats

	sched gocron.Scheduler
}

func New() *Monitor {
	return &Monitor{sample: Sample, interval: 30 * time.Second}
}

func (m *Monitor) PerformanceMode() bool { return m.perf.Load() }

func (m *Monitor) Reason() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reason
}

func (m *Monitor) Last() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Check toma una muestra y actualiza el estado.
func (m *Monitor) Check(ctx context.Context) {
	s, err := m.sample(ctx)
	if err != nil {
		log.Error().Err(err).Msg("resource check")
		return
	}
	enable, reason := ShouldEnablePerformanceMode(s)

	m.mu.Lock()
	m.last = s
	m.reason = reason
	m.mu.Unlock()

	if prev := m.perf.Swap(enable); prev != enable {
		log.Info().Bool("enabled", enable).Str("reason", reason).Msg("performance mode")
	}

	crit := Critical(s)
	if prev := m.critical.Swap(crit); crit && !prev {
		log.Warn().
			Float64("cpu", s.CPUPercent).
			Float64("ram", s.RAMPercent).
			Msg("critical resource usage")
	}
}

// Start registra el chequeo periódico y corre uno de inmediato.
func (m *Monitor) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	_, err = sched.NewJob(
		gocron.DurationJob(m.interval),
		gocron.NewTask(func() { m.Check(ctx) }),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return err
	}
	sched.Start()
	m.sched = sched
	return nil
}

func (m *Monitor) Stop() error {
	if m.sched == nil {
		return nil
	}
	return m.sched.Shutdown()
}
