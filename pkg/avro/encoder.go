package avro

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/hamba/avro/v2"
	"github.com/riferrei/srclient"
	"golang.org/x/sync/singleflight"
)

// Constants for Confluent wire format
const (
	confluentWireFormatHeaderSize = 5 // Magic byte (1) + Schema ID (4)
)

// schemaEntry holds the parsed schema and its schema ID.
type schemaEntry struct {
	schemaID int
	schema   avro.Schema
}

var (
	// Cache parsed schemas by subject
	schemaCacheBySubject sync.Map // map[string]schemaEntry
	// Prevent duplicate schema fetches
	singleFlight singleflight.Group
)

// getSchemaForSubject fetches and caches the latest schema for a subject.
func getSchemaForSubject(client *srclient.SchemaRegistryClient, subject string) (int, avro.Schema, error) {
	// Fast path: check cache
	if v, ok := schemaCacheBySubject.Load(subject); ok {
		se := v.(schemaEntry)
		return se.schemaID, se.schema, nil
	}
	// Singleflight to prevent duplicate fetches
	val, err, _ := singleFlight.Do(subject, func() (interface{}, error) {
		schemaMeta, err := client.GetLatestSchema(subject)
		if err != nil {
			return nil, fmt.Errorf("fetch schema %s: %w", subject, err)
		}
		schema, err := avro.Parse(schemaMeta.Schema())
		if err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", subject, err)
		}
		se := schemaEntry{schemaID: schemaMeta.ID(), schema: schema}
		schemaCacheBySubject.Store(subject, se)
		return se, nil
	})
	if err != nil {
		return 0, nil, err
	}
	se := val.(schemaEntry)
	return se.schemaID, se.schema, nil
}

// Encode serializes a record into the Confluent wire format (magic byte,
// big-endian schema ID, Avro binary body) using the registry's latest schema
// for the subject. Codecs are cached per subject.
func Encode(client *srclient.SchemaRegistryClient, subject string, record any) ([]byte, error) {
	schemaID, schema, err := getSchemaForSubject(client, subject)
	if err != nil {
		return nil, err
	}

	body, err := avro.Marshal(schema, record)
	if err != nil {
		return nil, fmt.Errorf("avro marshal %s: %w", subject, err)
	}

	out := make([]byte, confluentWireFormatHeaderSize, confluentWireFormatHeaderSize+len(body))
	out[0] = 0 // magic byte
	binary.BigEndian.PutUint32(out[1:confluentWireFormatHeaderSize], uint32(schemaID))
	return append(out, body...), nil
}
