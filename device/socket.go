package device

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/contoroinc/depthai-ros/errors"
)

// CameraSocket identifies a physical camera connector on the device board.
type CameraSocket int

// Camera board sockets
const (
	Auto CameraSocket = iota - 1
	CamA
	CamB
	CamC
	CamD
	CamE
	CamF
	CamG
	CamH
)

var socketIDs = map[CameraSocket]string{
	Auto: "AUTO",
	CamA: "CAM_A",
	CamB: "CAM_B",
	CamC: "CAM_C",
	CamD: "CAM_D",
	CamE: "CAM_E",
	CamF: "CAM_F",
	CamG: "CAM_G",
	CamH: "CAM_H",
}

// socketNames are the node names used for cameras on well-known sockets.
var socketNames = map[CameraSocket]string{
	Auto: "rgb",
	CamA: "rgb",
	CamB: "left",
	CamC: "right",
	CamD: "left_back",
	CamE: "right_back",
}

// String returns the board identifier, e.g. "CAM_A"
func (s CameraSocket) String() string {
	if id, ok := socketIDs[s]; ok {
		return id
	}
	return fmt.Sprintf("CAM_%d", int(s))
}

// SocketName returns the node name conventionally used for a camera on the socket.
// Sockets without a conventional name use their lower-cased board identifier.
func SocketName(s CameraSocket) string {
	if name, ok := socketNames[s]; ok {
		return name
	}
	return strings.ToLower(s.String())
}

// ParseSocket parses a board identifier such as "CAM_B" or "cam_b".
func ParseSocket(raw string) (CameraSocket, error) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	for socket, id := range socketIDs {
		if id == key {
			return socket, nil
		}
	}
	return Auto, errors.WrapInvalid(
		fmt.Errorf("%w: unknown camera socket %q", errors.ErrInvalidConfig, raw),
		"CameraSocket", "ParseSocket", "socket lookup")
}

// MarshalJSON encodes the socket as its board identifier
func (s CameraSocket) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a board identifier
func (s *CameraSocket) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseSocket(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML encodes the socket as its board identifier
func (s CameraSocket) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML decodes a board identifier
func (s *CameraSocket) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseSocket(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
