package tree

import "time"

type EvaluationMetric struct {
	Duration  time.Duration
	Nodes     int
	Terminals int
}

type Collector interface {
	Start()
	AddNode()
	AddTerminal()
	Complete() EvaluationMetric
}

type collector struct {
	startTime time.Time
	nodes     int
	terminals int
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start() {
	c.startTime = time.Now()
	c.nodes = 0
	c.terminals = 0
}

func (c *collector) AddNode() {
	c.nodes++
}

func (c *collector) AddTerminal() {
	c.terminals++
}

func (c *collector) Complete() EvaluationMetric {
	return EvaluationMetric{
		Duration:  time.Since(c.startTime),
		Nodes:     c.nodes,
		Terminals: c.terminals,
	}
}

type noCollector struct{}

func NewNoCollector() Collector {
	return &noCollector{}
}

func (c *noCollector) Start()                     {}
func (c *noCollector) AddNode()                   {}
func (c *noCollector) AddTerminal()               {}
func (c *noCollector) Complete() EvaluationMetric { return EvaluationMetric{} }
