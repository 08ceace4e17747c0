package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"k8s.io/klog/v2"
)

const (
	defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
)

// Report 天气查询结果
type Report struct {
	Location     string        `json:"location"`
	TempF        float64       `json:"tempF"`
	FeelsLikeF   float64       `json:"feelsLikeF"`
	Humidity     float64       `json:"humidity"`
	Description  string        `json:"description"`
	WindSpeedMph float64       `json:"windSpeedMph"`
	Forecast     []ForecastDay `json:"forecast"`
}

type ForecastDay struct {
	Date        string  `json:"date"`
	MaxTempF    float64 `json:"maxTempF"`
	MinTempF    float64 `json:"minTempF"`
	Description string  `json:"description"`
}

// Client Open-Meteo 天气客户端，免密钥
type Client struct {
	GeocodingURL string
	ForecastURL  string
	Client       *http.Client
}

func NewClient() *Client {
	return &Client{
		GeocodingURL: defaultGeocodingURL,
		ForecastURL:  defaultForecastURL,
		Client: &http.Client{
			Timeout: 4 * time.Second,
		},
	}
}

type geocodeResponse struct {
	Results []geocodePlace `json:"results"`
}

type geocodePlace struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Admin1    string  `json:"admin1"`
}

type forecastResponse struct {
	Current struct {
		Temperature2m       float64 `json:"temperature_2m"`
		RelativeHumidity2m  float64 `json:"relative_humidity_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		WeatherCode         int     `json:"weather_code"`
		WindSpeed10m        float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Daily struct {
		Time             []string  `json:"time"`
		Temperature2mMax []float64 `json:"temperature_2m_max"`
		Temperature2mMin []float64 `json:"temperature_2m_min"`
		WeatherCode      []int     `json:"weather_code"`
	} `json:"daily"`
}

var locationSplitRe = regexp.MustCompile(`[,\s]+`)

// Lookup 查询指定地点的当前天气与 3 天预报
// 地点格式 "City" 或 "City, ST"，州名用于地理编码结果消歧
func (c *Client) Lookup(ctx context.Context, location string) (*Report, error) {
	cleanLoc := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(location, "+", " "), ",", " "))
	var parts []string
	for _, p := range locationSplitRe.Split(cleanLoc, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	searchName := cleanLoc
	stateHint := ""
	if len(parts) > 0 {
		searchName = parts[0]
	}
	if len(parts) > 1 {
		stateHint = parts[1]
	}

	klog.V(6).Infof("天气查询: location=%s, search=%s, state=%s", location, searchName, stateHint)

	geo, err := c.geocode(ctx, searchName)
	if err != nil {
		return nil, fmt.Errorf("geocoding failed: %w", err)
	}

	place := matchPlace(geo.Results, stateHint)
	if place == nil {
		return nil, fmt.Errorf("location not found: %s", location)
	}

	wx, err := c.forecast(ctx, place.Latitude, place.Longitude)
	if err != nil {
		return nil, fmt.Errorf("forecast failed: %w", err)
	}

	displayLoc := place.Name
	if place.Admin1 != "" {
		displayLoc = fmt.Sprintf("%s, %s", place.Name, place.Admin1)
	}

	report := &Report{
		Location:     displayLoc,
		TempF:        wx.Current.Temperature2m,
		FeelsLikeF:   wx.Current.ApparentTemperature,
		Humidity:     wx.Current.RelativeHumidity2m,
		Description:  WMODescription(wx.Current.WeatherCode),
		WindSpeedMph: wx.Current.WindSpeed10m,
	}
	for i, date := range wx.Daily.Time {
		day := ForecastDay{Date: date}
		if i < len(wx.Daily.Temperature2mMax) {
			day.MaxTempF = wx.Daily.Temperature2mMax[i]
		}
		if i < len(wx.Daily.Temperature2mMin) {
			day.MinTempF = wx.Daily.Temperature2mMin[i]
		}
		if i < len(wx.Daily.WeatherCode) {
			day.Description = WMODescription(wx.Daily.WeatherCode[i])
		}
		report.Forecast = append(report.Forecast, day)
	}
	return report, nil
}

func (c *Client) geocode(ctx context.Context, name string) (*geocodeResponse, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("count", "5")

	var geo geocodeResponse
	if err := c.getJSON(ctx, c.GeocodingURL+"?"+params.Encode(), &geo); err != nil {
		return nil, err
	}
	return &geo, nil
}

func (c *Client) forecast(ctx context.Context, lat, lon float64) (*forecastResponse, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lon))
	params.Set("current", "temperature_2m,relative_humidity_2m,apparent_temperature,weather_code,wind_speed_10m")
	params.Set("daily", "temperature_2m_max,temperature_2m_min,weather_code")
	params.Set("temperature_unit", "fahrenheit")
	params.Set("wind_speed_unit", "mph")
	params.Set("forecast_days", "3")

	var wx forecastResponse
	if err := c.getJSON(ctx, c.ForecastURL+"?"+params.Encode(), &wx); err != nil {
		return nil, err
	}
	return &wx, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// matchPlace 按州提示匹配地理编码结果，无提示或未命中取第一条
func matchPlace(results []geocodePlace, stateHint string) *geocodePlace {
	if len(results) == 0 {
		return nil
	}
	if stateHint != "" {
		hint := ResolveState(stateHint)
		for i := range results {
			admin := strings.ToLower(results[i].Admin1)
			if strings.Contains(admin, hint) || strings.HasPrefix(admin, hint) {
				return &results[i]
			}
		}
	}
	return &results[0]
}
