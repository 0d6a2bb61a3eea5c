// Package stats submits usage statistics to InfluxDB.
package stats

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/balt-dev/titanium/common"
)

// Client is an InfluxDB client.
// All methods are safe to call on a nil Client, so the bot can run without
// InfluxDB configured.
type Client struct {
	Client api.WriteAPI

	queriesMu sync.Mutex
	queries   uint32

	cmdsMu sync.Mutex
	cmds   uint32

	// lookups per element name
	lookups   map[string]uint32
	lookupsMu sync.Mutex
}

// New creates a new client and starts its submit loop.
func New(url, token, organization, database string) *Client {
	c := &Client{
		lookups: make(map[string]uint32),
	}

	c.Client = influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().SetBatchSize(20)).WriteAPI(organization, database)

	go c.submit()

	return c
}

// RegisterLookup counts a lookup of the named element.
func (c *Client) RegisterLookup(name string) {
	if c == nil {
		return
	}

	c.lookupsMu.Lock()
	c.lookups[name]++
	c.lookupsMu.Unlock()
}

// IncQuery increments the query count by one.
func (c *Client) IncQuery() {
	if c == nil {
		return
	}

	c.queriesMu.Lock()
	c.queries++
	c.queriesMu.Unlock()
}

// IncCommand increments the command count by one.
func (c *Client) IncCommand() {
	if c == nil {
		return
	}

	c.cmdsMu.Lock()
	c.cmds++
	c.cmdsMu.Unlock()
}

func (c *Client) submit() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	ticker := time.NewTicker(time.Minute)

	for {
		select {
		case <-ticker.C:
			// submit metrics
			go c.submitInner()
		case <-ctx.Done():
			// break if we're shutting down
			ticker.Stop()
			c.Client.Flush()
			return
		}
	}
}

func (c *Client) submitInner() {
	common.Log.Debug("Submitting metrics to InfluxDB")

	var cmds, queries, totalLookups uint32

	c.queriesMu.Lock()
	queries = c.queries
	c.queries = 0
	c.queriesMu.Unlock()

	c.cmdsMu.Lock()
	cmds = c.cmds
	c.cmds = 0
	c.cmdsMu.Unlock()

	c.lookupsMu.Lock()
	im := make(map[string]interface{}, len(c.lookups))
	for k, v := range c.lookups {
		totalLookups += v
		im[k] = v
		c.lookups[k] = 0
	}
	c.lookupsMu.Unlock()

	if len(im) > 0 {
		p := influxdb2.NewPoint("lookups", nil, im, time.Now())
		c.Client.WritePoint(p)
	}

	stats := runtime.MemStats{}
	runtime.ReadMemStats(&stats)

	data := map[string]interface{}{
		"queries":     queries,
		"lookups":     totalLookups,
		"commands":    cmds,
		"alloc":       stats.Alloc,
		"sys":         stats.Sys,
		"total_alloc": stats.TotalAlloc,
		"goroutines":  runtime.NumGoroutine(),
	}

	sysMem, err := mem.VirtualMemory()
	if err != nil {
		common.Log.Errorf("Error getting system memory: %v", err)
	} else {
		data["total_sys"] = sysMem.Used
		data["total_sys_percent"] = sysMem.UsedPercent
	}

	cpuData, err := cpu.Percent(time.Minute, true)
	if err != nil {
		common.Log.Errorf("Error getting cpu info: %v", err)
	} else {
		for i, d := range cpuData {
			data[fmt.Sprintf("cpu_%d", i)] = d
		}
	}

	p := influxdb2.NewPoint("statistics", nil, data, time.Now())
	c.Client.WritePoint(p)
}
