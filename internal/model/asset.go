package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type AssetType string

const (
	AssetTypeAdAccount         AssetType = "ad_account"
	AssetTypePage              AssetType = "page"
	AssetTypeCatalog           AssetType = "catalog"
	AssetTypeBusinessDataset   AssetType = "business_dataset"
	AssetTypeInstagramAccount  AssetType = "instagram_account"
	AssetTypeAnalyticsProperty AssetType = "analytics_property"
	AssetTypeTagManagerAccount AssetType = "tagmanager_account"
	AssetTypeSearchConsoleSite AssetType = "searchconsole_site"
	AssetTypeBusinessAccount   AssetType = "business_account"
	AssetTypeMerchantAccount   AssetType = "merchant_account"
	AssetTypeBasic             AssetType = "basic"
	AssetTypeError             AssetType = "error"
)

// Label is the human name of an asset type, used when a platform returns an
// entry without a name.
func (t AssetType) Label() string {
	switch t {
	case AssetTypeAdAccount:
		return "Ad Account"
	case AssetTypePage:
		return "Page"
	case AssetTypeCatalog:
		return "Catalog"
	case AssetTypeBusinessDataset:
		return "Dataset"
	case AssetTypeInstagramAccount:
		return "Instagram Account"
	case AssetTypeAnalyticsProperty:
		return "Analytics Property"
	case AssetTypeTagManagerAccount:
		return "Tag Manager Account"
	case AssetTypeSearchConsoleSite:
		return "Search Console Site"
	case AssetTypeBusinessAccount:
		return "Business Account"
	case AssetTypeMerchantAccount:
		return "Merchant Account"
	case AssetTypeBasic:
		return "Profile"
	case AssetTypeError:
		return "Error"
	}
	return string(t)
}

// Asset is a discovered platform resource a client can grant access to.
type Asset struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Type AssetType `json:"type"`
}

// NewAsset builds an asset, falling back to "<Type label> (<id>)" when the
// platform returned no usable name.
func NewAsset(id, name string, t AssetType) Asset {
	if name == "" {
		name = fmt.Sprintf("%s (%s)", t.Label(), id)
	}
	return Asset{ID: id, Name: name, Type: t}
}

// BasicAsset is the single entry stored when discovery found nothing.
func BasicAsset(p Platform) Asset {
	return Asset{
		ID:   string(p) + "_basic",
		Name: p.DisplayName() + " Profile Access",
		Type: AssetTypeBasic,
	}
}

// ErrorAsset is the single entry stored when a discovery pass failed outright.
func ErrorAsset(p Platform) Asset {
	return Asset{
		ID:   string(p) + "_error",
		Name: "Asset discovery failed",
		Type: AssetTypeError,
	}
}

// IsPlaceholder reports whether the asset is a marker rather than a real
// platform resource.
func (a Asset) IsPlaceholder() bool {
	return a.Type == AssetTypeBasic || a.Type == AssetTypeError
}

// MarshalAssets encodes assets as a JSON array; nil encodes as [].
func MarshalAssets(assets []Asset) ([]byte, error) {
	if assets == nil {
		assets = []Asset{}
	}
	return json.Marshal(assets)
}

func UnmarshalAssets(data []byte) ([]Asset, error) {
	if len(data) == 0 {
		return []Asset{}, nil
	}
	var assets []Asset
	if err := json.Unmarshal(data, &assets); err != nil {
		return nil, err
	}
	if assets == nil {
		assets = []Asset{}
	}
	return assets, nil
}

// AssetsEqual compares two asset lists by their canonical JSON encoding.
// Order is significant.
func AssetsEqual(a, b []Asset) bool {
	ea, err := MarshalAssets(a)
	if err != nil {
		return false
	}
	eb, err := MarshalAssets(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ea, eb)
}

// FindAsset returns the asset with the given id.
func FindAsset(assets []Asset, id string) (Asset, bool) {
	for _, a := range assets {
		if a.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}
