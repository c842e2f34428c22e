// Package billsplitv1 defines the wire messages of the billsplit.v1 Connect
// services. Messages are plain Go structs carried by a JSON codec, so no
// protobuf code generation is needed to talk to the API from a browser or curl.
package billsplitv1

import (
	"encoding/json"
	"fmt"
)

// CodecName is registered under the name Connect uses for application/json,
// replacing the default protobuf-JSON codec.
const CodecName = "json"

// Codec is a Connect codec for the messages in this package.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return CodecName }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}
