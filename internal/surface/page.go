package surface

import (
	"bytes"
	"fmt"
	"html/template"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Bar digitizer</title>
<style>
  body { font-family: sans-serif; margin: 1em; }
  #stage { position: relative; display: inline-block; max-width: 100%; }
  #stage img, #stage canvas { display: block; max-width: 100%; height: auto; }
  #stage canvas { position: absolute; left: 0; top: 0; cursor: crosshair; }
  #title { font-weight: bold; margin-bottom: .5em; }
</style>
</head>
<body>
<div id="title">Loading…</div>
<div id="stage">
  <img id="chart" src="/chart.png" width="{{.Width}}" height="{{.Height}}" alt="chart">
  <canvas id="overlay" width="{{.Width}}" height="{{.Height}}"></canvas>
</div>
<p><button id="done">Done (close this phase)</button> <span id="count"></span></p>
<script>
const overlay = document.getElementById("overlay");
const ctx = overlay.getContext("2d");
const colors = { axis: "red", bars: "green" };
const halfWidths = { axis: {{.AxisHalfWidth}}, bars: {{.BarHalfWidth}} };
let state = null;

function draw() {
  ctx.clearRect(0, 0, overlay.width, overlay.height);
  if (!state) return;
  if (state.zero_line !== undefined) {
    ctx.save();
    ctx.strokeStyle = "red";
    ctx.setLineDash([6, 4]);
    ctx.beginPath();
    ctx.moveTo(0, state.zero_line + 0.5);
    ctx.lineTo(overlay.width, state.zero_line + 0.5);
    ctx.stroke();
    ctx.fillStyle = "red";
    ctx.font = "8pt sans-serif";
    ctx.textAlign = "right";
    ctx.fillText({{.ZeroLineLabel}}, overlay.width - 4, state.zero_line - 4);
    ctx.restore();
  }
  const color = colors[state.phase] || "blue";
  const half = halfWidths[state.phase] || 4;
  ctx.lineWidth = 2;
  ctx.strokeStyle = color;
  ctx.fillStyle = color;
  ctx.font = "bold 8pt sans-serif";
  ctx.textAlign = "center";
  for (const m of state.marks) {
    ctx.beginPath();
    ctx.moveTo(m.x - half, m.y);
    ctx.lineTo(m.x + half, m.y);
    ctx.stroke();
    if (m.label) ctx.fillText(m.label, m.x, m.y - {{.LabelOffset}});
  }
}

async function refresh() {
  try {
    const resp = await fetch("/state");
    state = await resp.json();
    document.getElementById("title").textContent =
      state.open ? state.title : "Continue in the console";
    document.getElementById("count").textContent =
      state.open ? state.count + " click(s)" : "";
    draw();
  } catch (e) {
    document.getElementById("title").textContent = "Session ended";
  }
}

overlay.addEventListener("click", async (e) => {
  const rect = overlay.getBoundingClientRect();
  await fetch("/click", {
    method: "POST",
    headers: { "Content-Type": "application/json" },
    body: JSON.stringify({
      x: e.clientX - rect.left,
      y: e.clientY - rect.top,
      display_width: rect.width,
      display_height: rect.height,
    }),
  });
  refresh();
});

document.getElementById("done").addEventListener("click", async () => {
  await fetch("/close", { method: "POST" });
  refresh();
});

refresh();
setInterval(refresh, 500);
</script>
</body>
</html>
`))

func renderPage(width, height int) ([]byte, error) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Width, Height               int
		AxisHalfWidth, BarHalfWidth int
		LabelOffset                 int
		ZeroLineLabel               string
	}{
		Width:         width,
		Height:        height,
		AxisHalfWidth: MarkHalfWidth(PhaseAxis),
		BarHalfWidth:  MarkHalfWidth(PhaseBars),
		LabelOffset:   LabelOffset,
		ZeroLineLabel: ZeroLineLabel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	return buf.Bytes(), nil
}
