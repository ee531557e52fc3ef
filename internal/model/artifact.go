package model

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"
)

// Artifact is the persisted trained state: fitted scaler parameters, the
// grown forest, and training metadata. The gob layout is implementation
// private; it only needs to round-trip through the same binary.
type Artifact struct {
	Scaler       *StandardScaler
	Forest       *RandomForest
	TrainedAt    time.Time
	Samples      int
	FeatureNames []string
}

// Encode serializes the artifact to gob bytes.
func (a *Artifact) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(a); err != nil {
		return nil, fmt.Errorf("encode model artifact: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeArtifact deserializes gob bytes produced by Encode.
func DecodeArtifact(data []byte) (*Artifact, error) {
	var a Artifact
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	return &a, nil
}
