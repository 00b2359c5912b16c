package web

import (
	"html/template"
	"log"
	"net/http"

	"tripguide/internal/trip"
)

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Travel Guide</title>
<style>
body { font-family: sans-serif; max-width: 860px; margin: 2em auto; padding: 0 1em; }
label { display: block; margin-top: 0.8em; font-weight: bold; }
input, select { width: 100%; padding: 0.4em; }
fieldset { margin-top: 0.8em; }
button { margin-top: 1em; padding: 0.5em 1.2em; }
#result, #answer { margin-top: 1.5em; }
.note { color: #777; font-size: 0.85em; }
</style>
</head>
<body>
<h1>🌍 Travel Guide</h1>
<p class="note">AI Travel Planner • Sample Pricing • Trip Sharing • Assistant</p>

<form id="trip-form">
  <label>Username <input name="username" required></label>
  <label>Cities (comma separated) <input name="cities" required></label>
  <label>Total Days <input name="total_days" type="number" min="1" max="{{.MaxDays}}" value="5"></label>
  <label>Language
    <select name="language">{{range .Languages}}<option>{{.}}</option>{{end}}</select>
  </label>
  <fieldset><legend>Interests</legend>
    {{range .Interests}}<label><input type="checkbox" name="interests" value="{{.}}"> {{.}}</label>{{end}}
  </fieldset>
  <fieldset><legend>Guardrails</legend>
    {{range .Guardrails}}<label><input type="checkbox" name="guardrails" value="{{.}}"> {{.}}</label>{{end}}
  </fieldset>
  <button type="submit">Generate Travel Plan</button>
  <button type="reset">Reset Form</button>
</form>

<div id="result"></div>

<h2>🤖 Ask the AI Assistant</h2>
<form id="ask-form">
  <label>Question <input name="question"></label>
  <button type="submit">Ask</button>
</form>
<div id="answer"></div>

<script>
const tripForm = document.getElementById('trip-form');
const askForm = document.getElementById('ask-form');
const result = document.getElementById('result');
const answer = document.getElementById('answer');

function checked(form, name) {
  return Array.from(form.querySelectorAll('input[name=' + name + ']:checked')).map(i => i.value);
}

tripForm.addEventListener('submit', async (e) => {
  e.preventDefault();
  const f = new FormData(tripForm);
  result.textContent = 'Generating itinerary…';
  const resp = await fetch('/api/trips', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({
      username: f.get('username'),
      cities: f.get('cities').split(','),
      total_days: parseInt(f.get('total_days'), 10),
      interests: checked(tripForm, 'interests'),
      guardrails: checked(tripForm, 'guardrails'),
      language: f.get('language'),
    }),
  });
  const data = await resp.json();
  if (!resp.ok) {
    result.textContent = data.message || 'Generation failed.';
    return;
  }
  const user = encodeURIComponent(f.get('username'));
  result.innerHTML = '<h2>✈️ Itinerary</h2>' + data.itinerary_html +
    '<p><a href="/api/trips/' + user + '/last/pdf">📄 Download PDF</a> · ' +
    'Shareable Trip ID: <code>' + data.share_id + '</code></p>' +
    '<p class="note">' + data.pricing_note + '</p>';
});

askForm.addEventListener('submit', async (e) => {
  e.preventDefault();
  const username = new FormData(tripForm).get('username');
  const question = new FormData(askForm).get('question');
  answer.textContent = 'Thinking…';
  const resp = await fetch('/api/assistant', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({username: username, question: question}),
  });
  const data = await resp.json();
  answer.textContent = resp.ok ? data.answer : (data.message || 'Request failed.');
});
</script>
</body>
</html>`))

var shareTmpl = template.Must(template.New("share").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Shared Trip</title>
<style>body { font-family: sans-serif; max-width: 860px; margin: 2em auto; padding: 0 1em; }</style>
</head>
<body>
<h1>✈️ Shared Itinerary</h1>
{{.Body}}
</body>
</html>`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Languages  []string
		Interests  []string
		Guardrails []string
		MaxDays    int
	}{
		Languages:  trip.Languages,
		Interests:  trip.InterestOptions,
		Guardrails: trip.GuardrailOptions,
		MaxDays:    trip.MaxDays,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		log.Printf("failed to render index: %v", err)
	}
}

func (s *Server) handleSharePage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	text, ok, err := s.repo.SharedItinerary(id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct{ Body template.HTML }{Body: template.HTML(markdownHTML(text))}
	if err := shareTmpl.Execute(w, data); err != nil {
		log.Printf("failed to render share page: %v", err)
	}
}
