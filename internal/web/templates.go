package web

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/pefman/alpha-counter/internal/view"
)

// Tree renders a widget tree as HTML. Buttons carry their click as data
// attributes; the page script turns them back into click messages.
func Tree(n view.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return writeNode(w, n)
	})
}

func writeNode(w io.Writer, n view.Node) error {
	tag := string(n.Tag)
	switch n.Tag {
	case view.TagH1, view.TagH2, view.TagDiv, view.TagButton:
	default:
		tag = "div"
	}

	var b strings.Builder
	b.WriteString("<" + tag)
	if n.Tag == view.TagButton {
		b.WriteString(` type="button"`)
		if c := n.Click; c != nil {
			b.WriteString(` data-control="` + templ.EscapeString(string(c.Control)) + `"`)
			b.WriteString(` data-slot="` + strconv.Itoa(int(c.Slot)) + `"`)
			if c.Character != "" {
				b.WriteString(` data-character="` + templ.EscapeString(c.Character) + `"`)
			}
		}
		if n.Selected {
			b.WriteString(` class="selected" aria-pressed="true"`)
		}
		if n.Disabled {
			b.WriteString(` disabled`)
		}
	}
	b.WriteString(">")
	b.WriteString(templ.EscapeString(n.Text))
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := writeNode(w, c); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</"+tag+">")
	return err
}

// renderHTML renders the tree to a string for WebSocket pushes.
func renderHTML(ctx context.Context, n view.Node) (string, error) {
	var b strings.Builder
	if err := Tree(n).Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Page is the full document: the current tree mounted in #main plus the
// script that keeps it in sync over /ws.
func Page(n view.Node, version uint64, buildVersion string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, pageHead); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main id="main" data-version="`+strconv.FormatUint(version, 10)+`">`); err != nil {
			return err
		}
		if err := Tree(n).Render(ctx, w); err != nil {
			return err
		}
		tail := strings.ReplaceAll(pageTail, "{{BUILD_VERSION}}", templ.EscapeString(buildVersion))
		_, err := io.WriteString(w, "</main>"+tail)
		return err
	})
}

const pageHead = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Alpha Counter</title>
  <style>
    :root{ --bg:#0a0c10; --text:#e5e7eb; --muted:#9aa4b2; --gold:#c9a753; --edge:#243042 }
    body{ margin:0; color:var(--text); background:var(--bg); font-family: ui-sans-serif, system-ui, -apple-system, Segoe UI, Roboto, Arial }
    main{ max-width:760px; margin:0 auto; padding:24px }
    h1{ color:var(--gold); letter-spacing:.06em } h2{ color:var(--muted); font-size:16px; margin:18px 0 8px }
    button{ cursor:pointer; margin:4px; padding:10px 14px; border-radius:10px; border:1px solid var(--edge); background:#111827; color:var(--text); font-weight:600 }
    button.selected{ border-color:var(--gold); background:rgba(201,167,83,.15) }
    button[disabled]{ opacity:.5; cursor:not-allowed }
    button[data-control="start"]{ display:block; margin-top:20px; background:var(--gold); color:#0a0c10 }
    #status{ min-height:1.4em; color:#ef4444; font-size:13px; padding:0 24px }
    footer{ color:var(--muted); font-size:11px; padding:0 24px }
  </style>
</head>
<body>
`

const pageTail = `
<div id="status"></div>
<footer>build {{BUILD_VERSION}}</footer>
<script>
(function(){
  const main=document.getElementById('main');
  const status=document.getElementById('status');
  let seen=Number(main.dataset.version||0);
  let ws=null;
  function connect(){
    const proto=location.protocol==='https:'?'wss':'ws';
    ws=new WebSocket(proto+'://'+location.host+'/ws');
    ws.onmessage=(ev)=>{
      const msg=JSON.parse(ev.data);
      if(msg.type==='render' && msg.data.version>=seen){ seen=msg.data.version; main.innerHTML=msg.data.html; status.textContent=''; }
      if(msg.type==='error'){ status.textContent=msg.data.message; }
    };
    ws.onclose=()=>{ setTimeout(connect, 1000); };
  }
  main.addEventListener('click',(ev)=>{
    const b=ev.target.closest('button[data-control]');
    if(!b || b.disabled || !ws || ws.readyState!==1) return;
    ws.send(JSON.stringify({type:'click', data:{control:b.dataset.control, slot:Number(b.dataset.slot), character:b.dataset.character||''}}));
  });
  connect();
})();
</script>
</body>
</html>
`
