package reflection

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/robloxapi/rbxdom"
)

//go:embed builtin_database.msgpack
var builtinDatabaseBytes []byte

// diskClass/diskProperty/diskDataType are the msgpack wire shapes for a
// ClassDescriptor/PropertyDescriptor/DataType tree (spec.md §4.C / §6.4):
// a flat array of classes, each carrying its own flat array of properties.
// Default property values are not part of this wire format — see
// DESIGN.md's Open Question decision on why Defaults is populated by
// callers rather than persisted here.
type diskDataType struct {
	IsEnum   bool              `msgpack:"isEnum"`
	Variant  rbxdom.VariantType `msgpack:"variant"`
	EnumName string            `msgpack:"enumName,omitempty"`
}

type diskProperty struct {
	Name          string       `msgpack:"name"`
	DataType      diskDataType `msgpack:"dataType"`
	Tags          []string     `msgpack:"tags,omitempty"`
	Scriptability byte         `msgpack:"scriptability"`
	Serializes    bool         `msgpack:"serializes"`
	AliasFor      string       `msgpack:"aliasFor,omitempty"`
	SerializesAs  string       `msgpack:"serializesAs,omitempty"`
}

type diskClass struct {
	Name       string         `msgpack:"name"`
	Superclass string         `msgpack:"superclass,omitempty"`
	Tags       []string       `msgpack:"tags,omitempty"`
	Properties []diskProperty `msgpack:"properties,omitempty"`
}

func fromDisk(classes []diskClass) *Database {
	db := NewDatabase()
	for _, dc := range classes {
		class := &ClassDescriptor{
			Name:       dc.Name,
			Superclass: dc.Superclass,
			Tags:       make(map[ClassTag]bool, len(dc.Tags)),
			Properties: make(map[string]*PropertyDescriptor, len(dc.Properties)),
		}
		for _, t := range dc.Tags {
			class.Tags[ClassTag(t)] = true
		}
		for _, dp := range dc.Properties {
			prop := &PropertyDescriptor{
				Name: dp.Name,
				DataType: DataType{
					IsEnum:   dp.DataType.IsEnum,
					Variant:  dp.DataType.Variant,
					EnumName: dp.DataType.EnumName,
				},
				Tags:          make(map[PropertyTag]bool, len(dp.Tags)),
				Scriptability: Scriptability(dp.Scriptability),
				Serializes:    dp.Serializes,
				AliasFor:      dp.AliasFor,
				SerializesAs:  dp.SerializesAs,
			}
			for _, t := range dp.Tags {
				prop.Tags[PropertyTag(t)] = true
			}
			class.Properties[dp.Name] = prop
		}
		db.Classes[dc.Name] = class
	}
	return db
}

func toDisk(db *Database) []diskClass {
	classes := make([]diskClass, 0, len(db.Classes))
	for _, class := range db.Classes {
		dc := diskClass{Name: class.Name, Superclass: class.Superclass}
		for t := range class.Tags {
			dc.Tags = append(dc.Tags, string(t))
		}
		for _, prop := range class.Properties {
			dp := diskProperty{
				Name: prop.Name,
				DataType: diskDataType{
					IsEnum:   prop.DataType.IsEnum,
					Variant:  prop.DataType.Variant,
					EnumName: prop.DataType.EnumName,
				},
				Scriptability: byte(prop.Scriptability),
				Serializes:    prop.Serializes,
				AliasFor:      prop.AliasFor,
				SerializesAs:  prop.SerializesAs,
			}
			for t := range prop.Tags {
				dp.Tags = append(dp.Tags, string(t))
			}
			dc.Properties = append(dc.Properties, dp)
		}
		classes = append(classes, dc)
	}
	return classes
}

// LoadBytes decodes a msgpack-encoded class/property descriptor table, the
// same format written by SaveBytes.
func LoadBytes(data []byte) (*Database, error) {
	var classes []diskClass
	if err := msgpack.Unmarshal(data, &classes); err != nil {
		return nil, fmt.Errorf("reflection: decoding database: %w", err)
	}
	return fromDisk(classes), nil
}

// SaveBytes encodes db's class/property descriptors (not Defaults) as the
// msgpack format LoadBytes reads back.
func SaveBytes(db *Database) ([]byte, error) {
	data, err := msgpack.Marshal(toDisk(db))
	if err != nil {
		return nil, fmt.Errorf("reflection: encoding database: %w", err)
	}
	return data, nil
}

// LoadFile reads and decodes the database at path.
func LoadFile(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reflection: reading database %s: %w", path, err)
	}
	return LoadBytes(data)
}

// databaseEnvVar, when set, names a msgpack database file Default loads in
// place of the user-config-dir and built-in fallbacks (spec.md §6.4).
const databaseEnvVar = "RBX_DATABASE"

// userDatabasePath returns the path Default checks before falling back to
// the embedded built-in database: <user config dir>/.rbxreflection/database.msgpack
// (spec.md §6.4), where the user config dir is os.UserConfigDir. The
// platform's local data directory is not checked.
func userDatabasePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".rbxreflection", "database.msgpack"), nil
}

// Default returns the process-wide reflection database, resolved in order:
//
//  1. The file named by the RBX_DATABASE environment variable, if set.
//  2. <user config dir>/.rbxreflection/database.msgpack, if it exists.
//  3. The minimal built-in database embedded in this binary.
//
// Default never returns an error: a missing or malformed override falls
// through to the next source, and a built-in database that fails to decode
// panics (TestDefaultFallsBackToBuiltin loads it).
func Default() *Database {
	if path := os.Getenv(databaseEnvVar); path != "" {
		if db, err := LoadFile(path); err == nil {
			return db
		}
	}
	if path, err := userDatabasePath(); err == nil {
		if db, loadErr := LoadFile(path); loadErr == nil {
			return db
		}
	}
	db, err := LoadBytes(builtinDatabaseBytes)
	if err != nil {
		// The embedded database is generated and checked in by this
		// module; a decode failure here means the embed itself is
		// corrupt, not a normal runtime condition.
		panic(fmt.Sprintf("reflection: built-in database: %v", err))
	}
	return db
}
