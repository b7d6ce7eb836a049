package node

import (
	"fmt"
)

// LinkDirective is one recorded point-to-point connection between an output
// port of Source and an input port of Target.
type LinkDirective struct {
	Source         string `json:"source"           yaml:"source"`
	SourcePort     int    `json:"source_port"      yaml:"source_port"`
	SourcePortName string `json:"source_port_name" yaml:"source_port_name"`
	Target         string `json:"target"           yaml:"target"`
	TargetPort     int    `json:"target_port"      yaml:"target_port"`
	TargetPortName string `json:"target_port_name" yaml:"target_port_name"`
}

// String renders the directive as "source.port -> target.port"
func (l LinkDirective) String() string {
	return fmt.Sprintf("%s.%s -> %s.%s", l.Source, l.SourcePortName, l.Target, l.TargetPortName)
}
