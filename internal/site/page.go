package site

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Profile.Brand}} · Physiotherapy in {{.Profile.City}}</title>
  <style>
    * { box-sizing: border-box; }
    :root {
      --teal: #0d9488;
      --teal-dark: #0f766e;
      --text: #1e293b;
      --muted: #64748b;
      --border: #e2e8f0;
      --bg: #f8fafc;
    }
    body { margin: 0; font-family: system-ui, -apple-system, "Segoe UI", sans-serif; color: var(--text); background: var(--bg); }
    a { color: var(--teal-dark); }
    .wrap { max-width: 1100px; margin: 0 auto; padding: 0 16px; }
    header { position: sticky; top: 0; background: rgba(255,255,255,.9); border-bottom: 1px solid var(--border); z-index: 10; }
    header .wrap { display: flex; align-items: center; justify-content: space-between; padding: 12px 16px; }
    .logo { display: inline-grid; place-content: center; width: 36px; height: 36px; border-radius: 14px; background: var(--teal); color: #fff; font-weight: 700; margin-right: 10px; }
    nav a { margin-left: 18px; text-decoration: none; font-size: 14px; }
    .btn { display: inline-block; border: 0; border-radius: 16px; background: var(--teal); color: #fff; padding: 8px 16px; text-decoration: none; cursor: pointer; }
    .btn:hover { background: var(--teal-dark); }
    .link { background: none; border: 0; color: var(--muted); text-decoration: underline; cursor: pointer; padding: 0; }
    section { padding: 48px 0; }
    h2 { font-size: 24px; }
    .grid { display: grid; gap: 20px; grid-template-columns: repeat(auto-fit, minmax(260px, 1fr)); }
    .card { background: #fff; border: 1px solid var(--border); border-radius: 16px; padding: 20px; }
    .muted { color: var(--muted); font-size: 14px; }
    label { display: block; font-size: 14px; margin-bottom: 4px; }
    input, select { width: 100%; padding: 8px 10px; border: 1px solid var(--border); border-radius: 12px; font: inherit; }
    .form-grid { display: grid; gap: 12px; grid-template-columns: 1fr 1fr; }
    .full { grid-column: 1 / -1; }
    .slots { display: grid; grid-template-columns: repeat(4, 1fr); gap: 8px; }
    .slots label { border: 1px solid var(--border); border-radius: 12px; padding: 6px; text-align: center; cursor: pointer; }
    .slots input { width: auto; }
    .alert { border-radius: 16px; padding: 14px; margin-top: 14px; font-size: 14px; }
    .alert.ok { background: #f0fdfa; border: 1px solid #99f6e4; }
    .alert.err { background: #fef2f2; border: 1px solid #fecaca; }
    table { border-collapse: collapse; width: 100%; font-size: 14px; }
    th, td { border-bottom: 1px solid var(--border); padding: 6px 8px; text-align: left; }
    ul.bookings { list-style: none; padding: 0; margin: 0; }
    ul.bookings li { display: flex; justify-content: space-between; flex-wrap: wrap; gap: 8px; padding: 12px 0; border-bottom: 1px solid var(--border); }
    .price { font-size: 28px; font-weight: 700; }
    details { margin-bottom: 10px; }
    summary { font-weight: 600; cursor: pointer; }
    footer { border-top: 1px solid var(--border); background: #fff; padding: 32px 0; font-size: 14px; }
    .cookie { position: fixed; left: 0; right: 0; bottom: 0; z-index: 20; }
    .cookie .card { max-width: 720px; margin: 12px auto; box-shadow: 0 4px 12px rgba(0,0,0,.08); }
    body.contrast { filter: contrast(1.5) saturate(1.5); }
    .a11y { position: fixed; right: 16px; bottom: 16px; z-index: 30; display: flex; flex-direction: column; gap: 8px; }
    .a11y button { width: 44px; height: 44px; border-radius: 50%; border: 1px solid var(--border); background: #fff; cursor: pointer; font: inherit; font-size: 14px; }
    .skip { position: absolute; left: -999px; }
    .skip:focus { left: 8px; top: 8px; background: #fff; padding: 6px 10px; }
    @media (max-width: 720px) { nav { display: none; } .form-grid { grid-template-columns: 1fr; } }
  </style>
</head>
<body{{if .Prefs.HighContrast}} class="contrast"{{end}} style="font-size: {{.Prefs.FontSize}}">
  <a href="#main" class="skip">Skip to content</a>
  <header>
    <div class="wrap">
      <a href="/#main" style="display:flex;align-items:center;text-decoration:none;color:inherit" aria-label="{{.Profile.Brand}} home">
        <span class="logo">{{.Profile.BrandShort}}</span>
        <span><strong>{{.Profile.Brand}}</strong><br><span class="muted">{{.Profile.Tagline}}</span></span>
      </a>
      <nav aria-label="Primary">
        <a href="#services">Services</a>
        <a href="#booking">Book</a>
        <a href="#team">Team</a>
        <a href="#outcomes">Outcomes</a>
        <a href="#pricing">Pricing</a>
        <a href="#contact">Contact</a>
      </nav>
      <a class="btn" href="{{.TelURL}}">Call {{.Profile.Phone}}</a>
    </div>
  </header>

  <main id="main">
    <section>
      <div class="wrap grid">
        <div>
          <h1>Personalised physiotherapy that gets you back to what you love</h1>
          <p class="muted">One-on-one care, clear plans, measurable progress. From back pain to sports injuries, our team blends manual therapy with progressive loading and education.</p>
          <p><a class="btn" href="#quick-book">Book an evaluation</a> <a href="#services">Explore services</a></p>
          <ul class="muted">
            <li>NABL standards</li>
            <li>Same-week starts</li>
            <li>Home programs</li>
          </ul>
        </div>

        <div class="card" id="quick-book" aria-labelledby="quick-book-title">
          <h2 id="quick-book-title">Quick Book</h2>
          <form method="get" action="/#quick-book">
            <label for="pick-date">Date</label>
            <div style="display:flex;gap:8px">
              <select id="pick-date" name="date">
                <option value="">Select a date</option>
                {{range .Days}}<option value="{{.Date}}"{{if eq .Date $.Form.Date}} selected{{end}}>{{.Label}}</option>{{end}}
              </select>
              <button class="btn" type="submit">Show times</button>
            </div>
          </form>

          <form method="post" action="/book#quick-book" class="form-grid" style="margin-top:12px">
            <input type="hidden" name="date" value="{{.Form.Date}}">
            <div><label for="name">Full name</label><input id="name" name="name" required value="{{.Form.Name}}" placeholder="Your name"></div>
            <div><label for="phone">Phone</label><input id="phone" name="phone" required value="{{.Form.Phone}}" placeholder="+91…"></div>
            <div><label for="email">Email</label><input id="email" name="email" type="email" required value="{{.Form.Email}}" placeholder="you@example.com"></div>
            <div>
              <label for="mode">Visit mode</label>
              <select id="mode" name="mode">
                {{range .Modes}}<option{{if eq . $.Form.Mode}} selected{{end}}>{{.}}</option>{{end}}
              </select>
            </div>
            <div>
              <label for="service">Service</label>
              <select id="service" name="service">
                {{range .Profile.Services}}<option{{if eq .Name $.Form.Service}} selected{{end}}>{{.Name}}</option>{{end}}
              </select>
            </div>
            <div>
              <label for="therapist">Therapist</label>
              <select id="therapist" name="therapist">
                <option{{if eq $.Form.Therapist $.FirstAvailable}} selected{{end}}>{{$.FirstAvailable}}</option>
                {{range .Profile.Therapists}}<option{{if eq .Name $.Form.Therapist}} selected{{end}}>{{.Name}}</option>{{end}}
              </select>
            </div>
            <fieldset class="full" style="border:0;padding:0">
              <legend style="font-size:14px">Time{{if .Form.Date}} on {{.Form.Date}}{{end}}</legend>
              {{if not .Form.Date}}<p class="muted">Select a date to see times.</p>{{end}}
              <div class="slots">
                {{range .Slots}}<label><input type="radio" name="time" value="{{.}}"{{if eq . $.Form.Time}} checked{{end}}> {{.}}</label>{{end}}
              </div>
            </fieldset>
            <div class="full" style="display:flex;justify-content:space-between;align-items:center">
              <button class="btn" type="submit">Confirm appointment</button>
              <span class="muted">You'll get an .ics calendar file after booking.</span>
            </div>
          </form>

          {{with .Rejection}}
          <div class="alert err" role="alert" data-reason="{{.Reason}}">{{.Message}}</div>
          {{end}}

          {{with .Confirmation}}
          <div class="alert ok" role="status">
            <p><strong>You're booked!</strong> {{.StartLabel}}</p>
            <p>
              {{if .DownloadURL}}<a href="{{.DownloadURL}}" download="{{.Filename}}">Add to Calendar (.ics)</a> ·{{end}}
              <a href="{{$.Profile.MapsURL}}" target="_blank" rel="noreferrer">Directions</a> ·
              <a href="{{.EmailURL}}">Email confirmation</a>
            </p>
          </div>
          {{end}}
        </div>
      </div>
    </section>

    <section id="services">
      <div class="wrap">
        <h2>Comprehensive Services</h2>
        <div class="grid">
          {{range .Profile.Services}}<div class="card"><h3>{{.Name}}</h3><p class="muted">{{.Description}}</p></div>{{end}}
        </div>
      </div>
    </section>

    <section id="team">
      <div class="wrap">
        <h2>Meet Your Care Team</h2>
        <div class="grid">
          {{range .Profile.Therapists}}<div class="card"><h3>{{.Name}}</h3><p>{{.Role}}</p><p class="muted">{{.Blurb}}</p><p>★ {{printf "%.1f" .Rating}}</p></div>{{end}}
        </div>
      </div>
    </section>

    <section id="outcomes">
      <div class="wrap grid">
        <div class="card">
          <h2>Measured Outcomes</h2>
          <table>
            <thead><tr><th>Week</th><th>Pain (0–10)</th><th>Knee ROM (°)</th></tr></thead>
            <tbody>
              {{range .Profile.Outcomes}}<tr><td>{{.Week}}</td><td>{{printf "%.1f" .Pain}}</td><td>{{.ROM}}</td></tr>{{end}}
            </tbody>
          </table>
        </div>
        <ul>
          <li>Average pain reduced from {{printf "%.1f" .PainStart}} → {{printf "%.1f" .PainEnd}} by week {{.OutcomeWeeks}}.</li>
          <li>Knee range of motion improved {{.ROMGain}}° on average over {{.OutcomeWeeks}} weeks.</li>
          <li>Home program adherence &gt; 80% (reported).</li>
        </ul>
      </div>
    </section>

    <section id="pricing">
      <div class="wrap">
        <h2>Pricing &amp; Packages</h2>
        <div class="grid">
          {{range .Profile.Pricing}}<div class="card"><h3>{{.Name}}</h3><p class="price">{{.Price}}</p><ul>{{range .Features}}<li>{{.}}</li>{{end}}</ul><a class="btn" href="#quick-book">Book now</a></div>{{end}}
        </div>
        <div class="card" style="margin-top:20px">
          <p><strong>Billing &amp; Insurance</strong></p>
          <p class="muted">We provide itemized invoices for reimbursements and accept most major insurers. Cashless options are available with select partners. For corporate wellness tie-ups, contact <a href="mailto:{{.Profile.Email}}">{{.Profile.Email}}</a>.</p>
        </div>
      </div>
    </section>

    <section id="reviews">
      <div class="wrap">
        <h2>What patients say</h2>
        <div class="grid">
          {{range .Profile.Reviews}}<blockquote class="card"><p>“{{.Text}}”</p><footer class="muted">— {{.Name}}</footer></blockquote>{{end}}
        </div>
      </div>
    </section>

    <section id="faq">
      <div class="wrap">
        <h2>FAQs</h2>
        {{range .Profile.FAQs}}<details class="card"><summary>{{.Question}}</summary><p class="muted">{{.Answer}}</p></details>{{end}}
      </div>
    </section>

    <section id="contact">
      <div class="wrap grid">
        <div class="card">
          <h2>Find us</h2>
          <h3>{{.Profile.Brand}}</h3>
          <address>{{.Profile.StreetAddress}},<br>{{.Profile.Locality}}</address>
          <p><a href="{{.TelURL}}">{{.Profile.Phone}}</a> · <a href="mailto:{{.Profile.Email}}">{{.Profile.Email}}</a></p>
          <p class="muted">Hours: {{.HoursSummary}}</p>
          <p><a href="{{.Profile.MapsURL}}" target="_blank" rel="noreferrer">Open in Google Maps</a></p>
        </div>
        <iframe title="Clinic map" loading="lazy" referrerpolicy="no-referrer-when-downgrade" src="{{.Profile.MapEmbedURL}}" style="width:100%;min-height:280px;border:1px solid var(--border);border-radius:16px"></iframe>
      </div>
    </section>

    <section id="booking">
      <div class="wrap">
        <h2>Book your visit</h2>
        <p class="muted">Use the quick form above or call us. After booking, you'll receive an .ics calendar file. Rescheduling is free up to 12 hours prior.</p>
        <div class="card">
          <h3>Your upcoming bookings</h3>
          {{if not .Bookings}}
          <p class="muted">No upcoming bookings yet.</p>
          {{else}}
          <ul class="bookings">
            {{range .Bookings}}
            <li id="booking-{{.ID}}">
              <div>
                <strong>{{.Service}} with {{.Therapist}}</strong>
                <div class="muted">{{.StartLabel}} · {{.Mode}}</div>
              </div>
              <div>
                <a href="{{.CalendarURL}}">Add to calendar</a>
                <a href="{{.RescheduleURL}}">Reschedule</a>
                <form method="post" action="/bookings/{{.ID}}/cancel" style="display:inline">
                  <button class="link" type="submit">Cancel</button>
                </form>
              </div>
            </li>
            {{end}}
          </ul>
          {{end}}
        </div>
      </div>
    </section>
  </main>

  <footer>
    <div class="wrap grid">
      <div><strong>{{.Profile.Brand}}</strong><p class="muted">© {{.Year}} All rights reserved.</p></div>
      <div>
        <strong>Patient info</strong>
        <ul><li><a href="#pricing">Pricing</a></li><li><a href="#faq">FAQs</a></li><li><a href="#reviews">Reviews</a></li></ul>
      </div>
      <div>
        <strong id="policies">Policies</strong>
        <ul class="muted"><li>Privacy &amp; HIPAA-compliant records</li><li>24h cancellation policy</li><li>Emergency? Call your local services</li></ul>
      </div>
    </div>
  </footer>

  {{if .ShowCookieBanner}}
  <div class="cookie" role="dialog" aria-label="Cookie notice">
    <div class="card">
      <p class="muted">We use cookies for basic functionality. We do not sell or share your data.</p>
      <form method="post" action="/consent" style="display:inline"><button class="btn" type="submit">Okay</button></form>
      <a href="#policies">Learn more</a>
    </div>
  </div>
  {{end}}

  <form class="a11y" method="post" action="/preferences" aria-label="Accessibility">
    <button type="submit" name="action" value="contrast" aria-pressed="{{.Prefs.HighContrast}}" aria-label="Toggle high contrast">◐</button>
    <button type="submit" name="action" value="larger" aria-label="Increase font size">A+</button>
    <button type="submit" name="action" value="smaller" aria-label="Decrease font size">A-</button>
  </form>

  <a class="btn" href="{{.TelURL}}" style="position:fixed;left:16px;bottom:16px">Call</a>
</body>
</html>
`
