// Command dashboard-client exercises the facade the way the browser front
// end does: it resolves a city, joins the three initial-load fetches, and
// prints the daily outlook, the 24-hour chart records, the air-quality
// summary, and an optional side-by-side city comparison.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Mani-Chandra65/Weather-App/internal/client"
	"github.com/Mani-Chandra65/Weather-App/internal/compare"
	"github.com/Mani-Chandra65/Weather-App/internal/forecast"
)

func main() {
	baseURL := flag.String("url", "http://localhost:5000/api", "Facade base URL")
	city := flag.String("city", "", "City to show; falls back to the server default when empty")
	compareList := flag.String("compare", "", "Comma-separated cities to compare (max 5)")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := client.New(*baseURL, nil)

	name := *city
	if name == "" {
		// Same policy as the UI when geolocation fails.
		name = "New York"
	}

	dash, err := c.FetchDashboardByCity(ctx, name)
	if err != nil {
		if errors.Is(err, client.ErrCityNotFound) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cur := dash.Current
	cond := cur.Condition()
	fmt.Printf("%s, %s — %.0f°C (feels like %.0f°C), %s\n",
		cur.Name, cur.Sys.Country, cur.Main.Temp, cur.Main.FeelsLike, cond.Description)
	fmt.Printf("humidity %d%%  pressure %.0f hPa  wind %d km/h %s  visibility %.1f km\n\n",
		cur.Main.Humidity, cur.Main.Pressure,
		forecast.KmhFromMps(cur.Wind.Speed), forecast.WindDirection(cur.Wind.Deg),
		float64(cur.Visibility)/1000)

	fmt.Println("5-Day Forecast")
	for _, day := range forecast.Daily(dash.Forecast.List) {
		s := day.Sample
		fmt.Printf("  %-5s %3.0f°  %-16s %d km/h  %d%%\n",
			day.Label, s.Main.Temp, s.Condition().Description,
			forecast.KmhFromMps(s.Wind.Speed), s.Main.Humidity)
	}

	fmt.Println("\nNext 24 Hours")
	for _, rec := range forecast.Hourly(dash.Forecast.List) {
		fmt.Printf("  %-16s %3d°  %3d%%  %6.1f hPa  %2d km/h  %.1f mm\n",
			rec.Time, rec.Temperature, rec.Humidity, rec.Pressure, rec.WindSpeed, rec.Precipitation)
	}

	if len(dash.AirQuality.List) > 0 {
		aq := dash.AirQuality.List[0]
		info := forecast.AQILevel(aq.Main.AQI)
		fmt.Printf("\nAir Quality: %s — %s\n", info.Level, info.Description)
		fmt.Printf("  PM2.5 %.1f  PM10 %.1f  O3 %.1f  NO2 %.1f µg/m³\n",
			aq.Components.PM25, aq.Components.PM10, aq.Components.O3, aq.Components.NO2)
	}

	if *compareList != "" {
		set := compare.NewSet(c)
		for _, name := range strings.Split(*compareList, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if err := set.Add(ctx, name); err != nil {
				fmt.Fprintf(os.Stderr, "compare %s: %v\n", name, err)
			}
		}

		if set.Len() > 0 {
			fmt.Println("\nCity Comparison")
			for _, entry := range set.Entries() {
				snap := entry.Snapshot
				marker := ""
				if entry.Hottest {
					marker = " (hottest)"
				}
				if entry.Coldest {
					marker = " (coldest)"
				}
				fmt.Printf("  %-20s %3.0f°C  %s%s\n",
					snap.Name+", "+snap.Sys.Country, snap.Main.Temp,
					snap.Condition().Description, marker)
			}
		}
	}
}
