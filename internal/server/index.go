package server

import "net/http"

// Minimal upload page so the service is usable without the API docs.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Claimlens PDF Fact Checker</title>
<style>
  body { font-family: system-ui, sans-serif; max-width: 680px; margin: 3rem auto; padding: 0 1rem; color: #222; }
  h1 { font-size: 1.5rem; }
  form { border: 2px dashed #bbb; border-radius: 8px; padding: 2rem; margin: 1.5rem 0; }
  button { padding: 0.5rem 1.25rem; font-size: 1rem; cursor: pointer; }
  pre { background: #f6f6f6; padding: 1rem; border-radius: 6px; overflow-x: auto; white-space: pre-wrap; }
  .hint { color: #666; font-size: 0.9rem; }
</style>
</head>
<body>
<h1>🔍 Claimlens</h1>
<p>Upload a PDF to extract factual claims and verify them against current web sources.</p>
<form id="f">
  <input type="file" name="file" accept=".pdf" required>
  <button type="submit">Check facts</button>
  <button type="button" id="preview">Preview claims only</button>
  <p class="hint">Text-based PDFs only. Scanned or image-only documents cannot be analyzed.</p>
</form>
<pre id="out" hidden></pre>
<script>
const form = document.getElementById('f');
const out = document.getElementById('out');
async function submit(path) {
  const data = new FormData(form);
  out.hidden = false;
  out.textContent = 'Working… verification can take a minute or two.';
  try {
    const resp = await fetch(path, { method: 'POST', body: data });
    const body = await resp.json();
    out.textContent = JSON.stringify(body, null, 2);
  } catch (err) {
    out.textContent = 'Request failed: ' + err;
  }
}
form.addEventListener('submit', e => { e.preventDefault(); submit('/api/check'); });
document.getElementById('preview').addEventListener('click', () => submit('/api/claims'));
</script>
</body>
</html>
`

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}
