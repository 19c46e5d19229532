package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/mikelawrence/LED-Relay/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"onoff": func(on bool) string {
		return status.OnOff(on)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>LED Relay</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>LED Relay</h1>

<h2>State</h2>
<table>
<tr><th>Power</th><td>{{.Relay.Power}}</td></tr>
<tr><th>Ignition</th><td class="{{if .Relay.Ignition}}on{{else}}off{{end}}">{{onoff .Relay.Ignition}}</td></tr>
<tr><th>Accessory</th><td class="{{if .Relay.Accessory}}on{{else}}off{{end}}">{{onoff .Relay.Accessory}}</td></tr>
<tr><th>Output</th><td class="{{if .Relay.Output}}on{{else}}off{{end}}">{{onoff .Relay.Output}}</td></tr>
<tr><th>Stay-on delay</th><td>{{.Relay.DelayMinutes}} min</td></tr>
<tr><th>Timer</th><td>{{.Relay.TimerMinutes}}m {{.Relay.TimerSeconds}}s</td></tr>
<tr><th>Programming</th><td>{{if .Relay.Programming}}in progress{{else}}idle{{end}}</td></tr>
</table>

<h2>MQTT</h2>
<table>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
<tr><th>Connection</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
</table>

{{if .Network}}
<h2>Network</h2>
<table>
<tr><th>Type</th><td>{{.Network.Type}}</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>
<tr><th>Status</th><td>{{.Network.Status}}</td></tr>
<tr><th>Gateway</th><td>{{.Network.Gateway}}</td></tr>
{{if .Network.SSID}}<tr><th>SSID</th><td>{{.Network.SSID}}</td></tr>{{end}}
</table>
{{end}}

<h2>Event counts</h2>
<table>
<tr><th>Output ON</th><td>{{.Relay.Counts.OutputOn}}</td></tr>
<tr><th>Output OFF</th><td>{{.Relay.Counts.OutputOff}}</td></tr>
<tr><th>Stay-on</th><td>{{.Relay.Counts.StayOn}}</td></tr>
<tr><th>Timer wait</th><td>{{.Relay.Counts.TimerWait}}</td></tr>
<tr><th>Power down</th><td>{{.Relay.Counts.PowerDown}}</td></tr>
<tr><th>Programmed</th><td>{{.Relay.Counts.Programmed}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
<tr><th>Delay store</th><td>{{.Config.StorePath}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	if err := indexTmpl.Execute(w, snap); err != nil {
		log.Printf("render status page: %v", err)
	}
}
