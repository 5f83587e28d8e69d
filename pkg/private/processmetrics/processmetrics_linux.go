// Copyright 2023 SCION Association
// Copyright 2026 The DAQ Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build linux

package processmetrics

import (
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/procfs"

	"github.com/faucetsdn/daq/pkg/private/serrors"
)

var (
	runningTime = prometheus.NewDesc(
		"process_running_seconds_total",
		"CPU time the process spent running since it started (all threads summed).",
		nil, nil,
	)
	runnableTime = prometheus.NewDesc(
		"process_runnable_seconds_total",
		"CPU time the process spent waiting for a core since it started (all threads summed).",
		nil, nil,
	)
	openFiles = prometheus.NewDesc(
		"process_open_files",
		"Number of file descriptors currently held by the process.",
		nil, nil,
	)
)

type collector struct {
	proc procfs.Proc
	// tasks is kept open so that thread creation can be detected with a
	// single fstat.
	tasks     *os.File
	taskCount uint64
	threads   procfs.Procs

	running  uint64
	runnable uint64
	files    int
}

func (c *collector) update() error {
	var st syscall.Stat_t
	if err := syscall.Fstat(int(c.tasks.Fd()), &st); err != nil {
		return err
	}
	//nolint:unconvert // Nlink differs in width across architectures.
	count := uint64(st.Nlink - 2)
	if count != c.taskCount || c.threads == nil {
		threads, err := procfs.AllThreads(c.proc.PID)
		if err != nil {
			return err
		}
		c.threads, c.taskCount = threads, count
	}

	var running, runnable uint64
	var firstErr error
	for _, t := range c.threads {
		s, err := t.Schedstat()
		if err != nil {
			// Threads may vanish between listing and reading.
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		running += s.RunningNanoseconds
		runnable += s.WaitingNanoseconds
	}
	c.running, c.runnable = running, runnable

	files, err := c.proc.FileDescriptorsLen()
	if err != nil {
		return err
	}
	c.files = files
	return firstErr
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(c, ch)
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	_ = c.update()
	ch <- prometheus.MustNewConstMetric(runningTime, prometheus.CounterValue,
		float64(c.running)/1e9)
	ch <- prometheus.MustNewConstMetric(runnableTime, prometheus.CounterValue,
		float64(c.runnable)/1e9)
	ch <- prometheus.MustNewConstMetric(openFiles, prometheus.GaugeValue,
		float64(c.files))
}

// Register registers a collector for the current process with reg. It must
// be called at most once per registry.
func Register(reg prometheus.Registerer) error {
	proc, err := procfs.Self()
	if err != nil {
		return serrors.Wrap("opening own proc entry", err)
	}
	path := filepath.Join(procfs.DefaultMountPoint, strconv.Itoa(proc.PID), "task")
	tasks, err := os.Open(path)
	if err != nil {
		return serrors.Wrap("opening task directory", err, "path", path)
	}
	c := &collector{proc: proc, tasks: tasks}
	if err := c.update(); err != nil {
		tasks.Close()
		return serrors.Wrap("reading process statistics", err)
	}
	if err := reg.Register(c); err != nil {
		tasks.Close()
		return serrors.Wrap("registering process collector", err)
	}
	return nil
}
