package config

import (
	"fmt"

	"github.com/ncobase/listing/site"
	"github.com/spf13/viper"
)

// Sites site table config struct
type Sites struct {
	Default string
	List    []site.Site `validate:"min=1,dive"`
}

func getSitesConfig(v *viper.Viper) (*Sites, error) {
	var list []site.Site
	if err := v.UnmarshalKey("sites.list", &list); err != nil {
		return nil, fmt.Errorf("failed to decode sites: %w", err)
	}
	return &Sites{
		Default: v.GetString("sites.default"),
		List:    list,
	}, nil
}

// Resolver builds the site resolver from the configured sites.
func (s *Sites) Resolver() (*site.Resolver, error) {
	return site.NewResolver(s.List, s.Default)
}
