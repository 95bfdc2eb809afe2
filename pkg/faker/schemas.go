package faker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

const (
	httpOKStatus       = 200 // HTTP OK status code
	httpErrorThreshold = 300 // HTTP error status threshold
)

// SampleSchema describes the single-sample record variant.
const SampleSchema = `{
  "type": "record",
  "name": "Sample",
  "fields": [
    {"name": "msg_type", "type": "int"},
    {"name": "value", "type": "double"},
    {"name": "sequence", "type": "long"},
    {"name": "timestamp", "type": "string"}
  ]
}`

// EncoderBatchSchema describes the fixed-batch record variant.
const EncoderBatchSchema = `{
  "type": "array",
  "items": {
    "type": "record",
    "name": "EncoderSample",
    "fields": [
      {"name": "msg_type", "type": "int"},
      {"name": "encoder", "type": "int"},
      {"name": "motor", "type": "int"},
      {"name": "timestamp", "type": "string"},
      {"name": "encoder_counter", "type": "long"},
      {"name": "motor_counter", "type": "long"}
    ]
  }
}`

// SchemaForMode returns the wire schema for a generator mode.
func SchemaForMode(mode string) string {
	if mode == "encoder" {
		return EncoderBatchSchema
	}
	return SampleSchema
}

// RegisterSchemas registers the record schema for the given stream with the
// Schema Registry. Registration failures are logged and tolerated; the
// producer can still run against an already-registered subject.
func RegisterSchemas(registryURL, streamName, mode string) {
	subject := streamName + "-value"
	if err := registerSchema(subject, SchemaForMode(mode), registryURL); err != nil {
		log.Printf("[Schema] Failed to register schema for %s: %v", subject, err)
	} else {
		log.Printf("[Schema] Registered schema for %s", subject)
	}
}

func registerSchema(subject, avroSchema, registryURL string) error {
	// First, try to get the latest schema to check if it already exists
	getURL := fmt.Sprintf("%s/subjects/%s/versions/latest", registryURL, subject)
	getReq, err := http.NewRequestWithContext(context.Background(), "GET", getURL, http.NoBody)
	if err != nil {
		return err
	}
	getReq.Header.Set("Accept", "application/vnd.schemaregistry.v1+json")

	getResp, err := http.DefaultClient.Do(getReq)
	if err != nil {
		return err
	}
	defer getResp.Body.Close()

	// If schema exists (httpOKStatus), check if it matches
	if getResp.StatusCode == httpOKStatus {
		var existingSchema map[string]interface{}
		if decodeErr := json.NewDecoder(getResp.Body).Decode(&existingSchema); decodeErr != nil {
			return fmt.Errorf("failed to decode existing schema: %v", decodeErr)
		}

		if schema, ok := existingSchema["schema"].(string); ok && schema == avroSchema {
			// Schema already exists and matches, no need to register
			log.Printf("[Schema] Schema for %s already exists and matches, skipping registration", subject)
			return nil
		}
	}

	// Schema doesn't exist or doesn't match, proceed with registration
	payload := map[string]string{
		"schema": avroSchema,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/subjects/%s/versions", registryURL, subject)
	req, err := http.NewRequestWithContext(context.Background(), "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/vnd.schemaregistry.v1+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= httpErrorThreshold {
		return fmt.Errorf("failed to register schema: %s", resp.Status)
	}
	return nil
}
