package main

// clientPage is the browser frontend: a retained set of node/edge drawables
// whose geometry is overwritten by every frame message. Hit-testing happens
// here, so the server only ever sees pointer events with resolved node ids.
const clientPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>graphview</title>
<style>
  html, body { margin: 0; height: 100%; overflow: hidden; }
  canvas { display: block; cursor: grab; }
  #nav { position: fixed; top: 8px; left: 8px; font: 13px sans-serif; opacity: 0.7; }
</style>
</head>
<body>
<div id="nav"></div>
<canvas id="c"></canvas>
<script>
(function () {
  var canvas = document.getElementById('c');
  var ctx = canvas.getContext('2d');
  var nav = document.getElementById('nav');
  canvas.width = window.innerWidth;
  canvas.height = window.innerHeight;

  var theme = { background: '#0b0e14', foreground: '#eaeef3' };
  var nodes = [], edges = [];
  var radius = 8;

  var ws = new WebSocket('ws://' + location.host + '/live?width=' +
    canvas.width + '&height=' + canvas.height);

  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === 'init') {
      theme = msg.theme;
      nodes = (msg.nodes || []).map(function (n) {
        return { id: n.id, label: n.label, x: 0, y: 0, emphasis: false };
      });
      edges = (msg.edges || []).map(function (e) {
        return { color: e.color, x1: 0, y1: 0, x2: 0, y2: 0 };
      });
    } else if (msg.type === 'frame') {
      for (var i = 0; i < msg.nodes.length && i < nodes.length; i++) {
        nodes[i].x = msg.nodes[i].x;
        nodes[i].y = msg.nodes[i].y;
        nodes[i].emphasis = !!msg.nodes[i].emphasis;
        canvas.style.cursor = msg.nodes[i].grabbing ? 'grabbing' : canvas.style.cursor;
      }
      for (var j = 0; j < msg.edges.length && j < edges.length; j++) {
        edges[j].x1 = msg.edges[j].x1; edges[j].y1 = msg.edges[j].y1;
        edges[j].x2 = msg.edges[j].x2; edges[j].y2 = msg.edges[j].y2;
      }
      draw();
    } else if (msg.type === 'navigate') {
      nav.textContent = 'navigate: ' + msg.id;
    }
  };

  function draw() {
    ctx.fillStyle = theme.background;
    ctx.fillRect(0, 0, canvas.width, canvas.height);
    for (var j = 0; j < edges.length; j++) {
      var e = edges[j];
      ctx.strokeStyle = e.color;
      ctx.beginPath();
      ctx.moveTo(e.x1, e.y1);
      ctx.lineTo(e.x2, e.y2);
      ctx.stroke();
    }
    ctx.font = '12px sans-serif';
    for (var i = 0; i < nodes.length; i++) {
      var n = nodes[i];
      var r = n.emphasis ? radius + 3 : radius;
      ctx.fillStyle = theme.foreground;
      ctx.globalAlpha = n.emphasis ? 1.0 : 0.85;
      ctx.beginPath();
      ctx.arc(n.x, n.y, r, 0, Math.PI * 2);
      ctx.fill();
      ctx.globalAlpha = 1.0;
      ctx.fillText(n.label, n.x + r + 4, n.y - r - 2);
    }
  }

  function pick(x, y) {
    for (var i = 0; i < nodes.length; i++) {
      var dx = x - nodes[i].x, dy = y - nodes[i].y;
      if (dx * dx + dy * dy <= (radius + 3) * (radius + 3)) return nodes[i].id;
    }
    return null;
  }

  function send(msg) {
    if (ws.readyState === WebSocket.OPEN) ws.send(JSON.stringify(msg));
  }

  var hover = null;
  canvas.addEventListener('mousedown', function (ev) {
    var id = pick(ev.clientX, ev.clientY);
    if (id) {
      canvas.style.cursor = 'grabbing';
      send({ type: 'down', id: id, x: ev.clientX, y: ev.clientY });
    }
  });
  canvas.addEventListener('mousemove', function (ev) {
    var id = pick(ev.clientX, ev.clientY);
    if (id !== hover) {
      if (hover) send({ type: 'out', id: hover });
      if (id) send({ type: 'over', id: id });
      hover = id;
    }
    send({ type: 'move', x: ev.clientX, y: ev.clientY });
  });
  canvas.addEventListener('mouseup', function (ev) {
    canvas.style.cursor = 'grab';
    send({ type: 'up', x: ev.clientX, y: ev.clientY });
  });
  // Leaving the surface aborts any drag without a click.
  canvas.addEventListener('mouseleave', function () {
    canvas.style.cursor = 'grab';
    send({ type: 'cancel' });
  });
})();
</script>
</body>
</html>
`
