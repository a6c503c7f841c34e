package domain

import (
	"errors"
	"fmt"
)

// Units は面積の単位系です。スライダーの範囲と表示サフィックスに影響します。
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

var (
	ErrUnknownUnits   = errors.New("unknown units")
	ErrUnknownRoom    = errors.New("unknown room")
	ErrUnknownFeature = errors.New("unknown feature")
)

// ParseUnits は文字列を Units に変換します。
func ParseUnits(s string) (Units, error) {
	switch Units(s) {
	case UnitsMetric, UnitsImperial:
		return Units(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnits, s)
}

// AreaSuffix は画面表示用の面積単位です。
func (u Units) AreaSuffix() string {
	if u == UnitsImperial {
		return "ft²"
	}
	return "m²"
}

// PromptSuffix はプロンプトに埋め込む面積単位です。
func (u Units) PromptSuffix() string {
	if u == UnitsImperial {
		return "sq.ft"
	}
	return "sq.m"
}

// Requirements は間取り図に対するユーザーの要件です。
type Requirements struct {
	PlotSize    int  `json:"plotSize"`
	Bedrooms    int  `json:"bedrooms"`
	Bathrooms   int  `json:"bathrooms"`
	LivingRooms int  `json:"livingRooms"`
	Kitchens    int  `json:"kitchens"`
	HasDining   bool `json:"hasDining"`
	HasBalcony  bool `json:"hasBalcony"`
	HasParking  bool `json:"hasParking"`
}

// DefaultRequirements はアプリケーション起動時の初期値を返します。
func DefaultRequirements() Requirements {
	return Requirements{
		PlotSize:    250,
		Bedrooms:    2,
		Bathrooms:   2,
		LivingRooms: 1,
		Kitchens:    1,
		HasDining:   true,
		HasBalcony:  false,
		HasParking:  true,
	}
}

// Room は増減可能な部屋の種類です。
type Room string

const (
	RoomBedrooms    Room = "bedrooms"
	RoomBathrooms   Room = "bathrooms"
	RoomLivingRooms Room = "livingRooms"
	RoomKitchens    Room = "kitchens"
)

// Rooms はフォームの表示順です。
var Rooms = []Room{RoomBedrooms, RoomBathrooms, RoomLivingRooms, RoomKitchens}

var roomLabels = map[Room]string{
	RoomBedrooms:    "Bedroom",
	RoomBathrooms:   "Bathroom",
	RoomLivingRooms: "Living Room",
	RoomKitchens:    "Kitchen",
}

// ParseRoom は文字列を Room に変換します。
func ParseRoom(s string) (Room, error) {
	r := Room(s)
	if _, ok := roomLabels[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoom, s)
	}
	return r, nil
}

func (r Room) Label() string { return roomLabels[r] }

// Count は指定した部屋数へのポインタを返します。未知の Room の場合は nil です。
func (req *Requirements) Count(r Room) *int {
	switch r {
	case RoomBedrooms:
		return &req.Bedrooms
	case RoomBathrooms:
		return &req.Bathrooms
	case RoomLivingRooms:
		return &req.LivingRooms
	case RoomKitchens:
		return &req.Kitchens
	}
	return nil
}

// Feature は有無を切り替える設備です。
type Feature string

const (
	FeatureDining  Feature = "dining"
	FeatureBalcony Feature = "balcony"
	FeatureParking Feature = "parking"
)

var Features = []Feature{FeatureDining, FeatureBalcony, FeatureParking}

var featureLabels = map[Feature]string{
	FeatureDining:  "Dining Area",
	FeatureBalcony: "Balcony",
	FeatureParking: "Car Parking",
}

// ParseFeature は文字列を Feature に変換します。
func ParseFeature(s string) (Feature, error) {
	f := Feature(s)
	if _, ok := featureLabels[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFeature, s)
	}
	return f, nil
}

func (f Feature) Label() string { return featureLabels[f] }

// Flag は指定した設備フラグへのポインタを返します。未知の Feature の場合は nil です。
func (req *Requirements) Flag(f Feature) *bool {
	switch f {
	case FeatureDining:
		return &req.HasDining
	case FeatureBalcony:
		return &req.HasBalcony
	case FeatureParking:
		return &req.HasParking
	}
	return nil
}
