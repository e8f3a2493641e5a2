package geoip

import (
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/maxminddb-golang"
)

// Locator maps a client IP to an ISO 3166-1 alpha-2 country code.
type Locator interface {
	Country(ip string) (string, bool)
}

type countryRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
	RegisteredCountry struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"registered_country"`
}

// MaxMindLocator reads GeoLite2/GeoIP2 Country or City databases.
type MaxMindLocator struct {
	reader *maxminddb.Reader
}

// Open memory-maps the database at path. Close releases it.
func Open(path string) (*MaxMindLocator, error) {
	reader, err := maxminddb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database: %w", err)
	}
	if err := checkType(reader.Metadata.DatabaseType); err != nil {
		reader.Close()
		return nil, err
	}
	return &MaxMindLocator{reader: reader}, nil
}

func checkType(dbType string) error {
	if strings.Contains(dbType, "City") || strings.Contains(dbType, "Country") || strings.Contains(dbType, "Enterprise") {
		return nil
	}
	return fmt.Errorf("geoip database type %q has no country data", dbType)
}

// Country returns the country for ip. Lookups that fail or have no data report false.
func (l *MaxMindLocator) Country(ip string) (string, bool) {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return "", false
	}
	var record countryRecord
	if err := l.reader.Lookup(parsed, &record); err != nil {
		return "", false
	}
	code := record.Country.ISOCode
	if code == "" {
		code = record.RegisteredCountry.ISOCode
	}
	if len(code) != 2 {
		return "", false
	}
	return code, true
}

func (l *MaxMindLocator) Close() error {
	return l.reader.Close()
}

// NoopLocator never resolves a country. Used when no database is configured.
type NoopLocator struct{}

func (NoopLocator) Country(string) (string, bool) { return "", false }
