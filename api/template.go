package api

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Weather</title>
{{if eq .Page.State "loading"}}<meta http-equiv="refresh" content="2">
{{end}}</head>
<body class="{{with .Page.Weather}}{{.Theme}}{{end}}">
<form method="post" action="/search">
  <input type="text" name="city" placeholder="Enter city name..." autocomplete="off">
  <button type="submit">Search</button>
</form>
<nav>
{{range .QuickCities}}  <form method="post" action="/search" style="display:inline">
    <button class="quick-city" name="city" value="{{.}}">{{.}}</button>
  </form>
{{end}}</nav>
{{if eq .Page.State "loading"}}<div id="loader">Loading...</div>
{{else if eq .Page.State "error"}}<div id="errorMsg"><p id="errorText">{{.Page.Message}}</p></div>
{{else if eq .Page.State "weather"}}{{with .Page.Weather}}<div id="weatherCard">
  <p id="currentTime">{{.LocalTime}}</p>
  <p id="currentDate">{{.LocalDate}}</p>
  <div id="weatherIcon">{{.Icon}}</div>
  <div id="temperature">{{.Temperature}}</div>
  <p id="description">{{.Description}}</p>
  <h2 id="cityName">{{.Location}}</h2>
  <dl>
    <dt>Humidity</dt><dd id="humidity">{{.Humidity}}</dd>
    <dt>Wind</dt><dd id="windSpeed">{{.Wind}}</dd>
    <dt>Feels like</dt><dd id="feelsLike">{{.FeelsLike}}</dd>
    <dt>Visibility</dt><dd id="visibility">{{.Visibility}}</dd>
    <dt>Pressure</dt><dd id="pressure">{{.Pressure}}</dd>
    <dt>Sunrise</dt><dd id="sunrise">{{.Sunrise}}</dd>
  </dl>
</div>{{end}}
{{end}}<script>
(function () {
  var defaultCity = {{.DefaultCity}};
  if (sessionStorage.getItem("located")) { return; }
  sessionStorage.setItem("located", "1");

  function post(path, body) {
    fetch(path, {
      method: "POST",
      headers: {"Content-Type": "application/json"},
      body: JSON.stringify(body)
    }).then(function () { window.location.reload(); });
  }
  function useDefaultCity() { post("/api/weather/city", {city: defaultCity}); }

  if (!navigator.geolocation) { useDefaultCity(); return; }
  navigator.geolocation.getCurrentPosition(function (pos) {
    post("/api/weather/coordinates", {lat: pos.coords.latitude, lon: pos.coords.longitude});
  }, useDefaultCity);
})();
</script>
</body>
</html>
`))

type pageData struct {
	Page        Page
	QuickCities []string
	DefaultCity string
}
