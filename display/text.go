package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/teranos/kpnadi/dasha"
	"github.com/teranos/kpnadi/errors"
	"github.com/teranos/kpnadi/event"
	"github.com/teranos/kpnadi/report"
	"github.com/teranos/kpnadi/significator"
	"github.com/teranos/kpnadi/sym"
	"github.com/teranos/kpnadi/zodiac"
)

// dateLayout is used for period boundaries in text output.
const dateLayout = "2006-01-02"

// RenderText writes a human readable rendering of a report. Values without
// a text layout fall back to indented JSON.
func RenderText(w io.Writer, v interface{}) error {
	var b strings.Builder
	var err error
	switch r := v.(type) {
	case report.FullChart:
		err = fullChart(&b, r)
	case report.DashaTimeline:
		err = dashaTimeline(&b, r)
	case report.PrecisionScores:
		err = precisionScores(&b, r)
	case report.CategoryReport:
		err = category(&b, r)
	case report.EventPotential:
		err = eventPotential(&b, r)
	case report.NadiAnalysis:
		err = nadiAnalysis(&b, r)
	case report.NakshatraTable:
		err = nakshatraTable(&b, r)
	default:
		data, jerr := MarshalJSON(v, true)
		if jerr != nil {
			return errors.Wrap(jerr, "failed to encode text fallback")
		}
		b.Write(data)
		b.WriteByte('\n')
	}
	if err != nil {
		return errors.Wrap(err, "failed to render table")
	}
	_, err = io.WriteString(w, b.String())
	return err
}

func section(b *strings.Builder, title string) {
	b.WriteString(pterm.DefaultSection.Sprint(title))
	b.WriteByte('\n')
}

func table(b *strings.Builder, data pterm.TableData) error {
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	b.WriteString(s)
	b.WriteString("\n\n")
	return nil
}

func line(b *strings.Builder, format string, args ...interface{}) {
	fmt.Fprintf(b, format+"\n", args...)
}

func meta(b *strings.Builder, m report.Meta) {
	line(b, "%s  %s  now %s  v%s", m.Report, m.RequestID, m.Now.Format(time.RFC3339), m.Version)
}

func bodies(bs []zodiac.Body) string {
	if len(bs) == 0 {
		return "-"
	}
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = sym.Body(b) + b.String()
	}
	return strings.Join(names, " ")
}

func houses(hs []int) string {
	if len(hs) == 0 {
		return "-"
	}
	parts := make([]string, len(hs))
	for i, h := range hs {
		parts[i] = strconv.Itoa(h)
	}
	return strings.Join(parts, ",")
}

func degrees(lon float64) string {
	return strconv.FormatFloat(lon, 'f', 4, 64) + "°"
}

func lordsRow(l zodiac.Lords) []string {
	return []string{
		sym.Sign(l.Sign) + " " + l.Sign.String(),
		l.Nakshatra + " " + strconv.Itoa(l.Pada),
		sym.Labeled(l.StarLord),
		sym.Labeled(l.SubLord),
		sym.Labeled(l.SubSubLord),
	}
}

func period(p dasha.Period) string {
	return fmt.Sprintf("%s %s → %s", sym.Labeled(p.Lord), p.Start.Format(dateLayout), p.End.Format(dateLayout))
}

func fullChart(b *strings.Builder, r report.FullChart) error {
	meta(b, r.Meta)
	section(b, "Chart")
	asc := r.Ascendant
	line(b, "Birth      %s", r.Birth.Format(time.RFC3339))
	line(b, "Houses     %s", r.HouseSystem)
	line(b, "Ascendant  %s %s in %s (star %s, sub %s)",
		degrees(asc.Longitude), sym.Sign(asc.Sign), asc.Sign, asc.StarLord, asc.SubLord)
	line(b, "Balance    %s, %.4f years remaining", sym.Labeled(r.Balance.Lord), r.Balance.RemainingYears)
	if r.Current != nil {
		line(b, "Running    %s / %s / %s",
			r.Current.Mahadasha.Lord, r.Current.Antardasha.Lord, r.Current.Pratyantar.Lord)
	}
	b.WriteByte('\n')

	section(b, "Bodies")
	data := pterm.TableData{{"Body", "Longitude", "House", "Sign", "Star", "Star lord", "Sub lord", "Sub-sub lord", "Signifies"}}
	for _, d := range r.Bodies {
		name := sym.Labeled(d.Body)
		if d.Retrograde {
			name += " (R)"
		}
		row := []string{name, degrees(d.Longitude), strconv.Itoa(d.House)}
		row = append(row, lordsRow(d.Lords)...)
		data = append(data, append(row, houses(d.Signifies)))
	}
	if err := table(b, data); err != nil {
		return err
	}

	section(b, "Cusps")
	data = pterm.TableData{{"House", "Longitude", "Sign", "Star", "Star lord", "Sub lord", "Sub-sub lord"}}
	for _, c := range r.Cusps {
		row := []string{strconv.Itoa(c.House), degrees(c.Longitude)}
		data = append(data, append(row, lordsRow(c.Lords)...))
	}
	if err := table(b, data); err != nil {
		return err
	}

	section(b, "Significators")
	return table(b, significatorTable(r.Significators))
}

func significatorTable(sets []significator.Set) pterm.TableData {
	data := pterm.TableData{{"House", "L1 star", "L2 sign lord", "L3 occupy/aspect", "L4 lord link"}}
	for _, s := range sets {
		data = append(data, []string{
			strconv.Itoa(s.House),
			bodies(s.Level1),
			bodies(s.Level2),
			bodies(s.Level3),
			bodies(s.Level4),
		})
	}
	return data
}

func dashaTimeline(b *strings.Builder, r report.DashaTimeline) error {
	meta(b, r.Meta)
	section(b, "Vimshottari "+r.Depth.String())
	line(b, "Birth    %s", r.Birth.Format(time.RFC3339))
	line(b, "Horizon  %s", r.HorizonEnd.Format(dateLayout))
	line(b, "Balance  %s, %.4f years remaining", sym.Labeled(r.Balance.Lord), r.Balance.RemainingYears)
	b.WriteByte('\n')

	data := pterm.TableData{{"Level", "Lord", "Start", "End", "Days"}}
	var walk func(ps []dasha.Period, indent string)
	walk = func(ps []dasha.Period, indent string) {
		for _, p := range ps {
			lord := indent + sym.Labeled(p.Lord)
			if p.Balance {
				lord += " (balance)"
			}
			data = append(data, []string{
				p.Level.String(),
				lord,
				p.Start.Format(dateLayout),
				p.End.Format(dateLayout),
				strconv.FormatFloat(p.DurationDays, 'f', 2, 64),
			})
			walk(p.Children, indent+"  ")
		}
	}
	walk(r.Periods, "")
	if err := table(b, data); err != nil {
		return err
	}

	if r.Current != nil {
		section(b, "Running at "+r.Current.At.Format(dateLayout))
		line(b, "Mahadasha   %s", period(r.Current.Mahadasha))
		line(b, "Antardasha  %s", period(r.Current.Antardasha))
		line(b, "Pratyantar  %s", period(r.Current.Pratyantar))
		b.WriteByte('\n')
	}
	if len(r.Upcoming) > 0 {
		section(b, "Upcoming")
		for _, p := range r.Upcoming {
			line(b, "  %s", period(p))
		}
	}
	if len(r.Window) > 0 {
		b.WriteByte('\n')
		section(b, fmt.Sprintf("Next %d years", report.WindowYears))
		for _, p := range r.Window {
			indent := ""
			if p.Level == dasha.Antardasha {
				indent = "  "
			}
			line(b, "%s%s", indent, period(p))
		}
	}
	return nil
}

func precisionScores(b *strings.Builder, r report.PrecisionScores) error {
	meta(b, r.Meta)
	section(b, "Precision scores")
	data := pterm.TableData{{"Body", "Score", "Band", "Favorable", "Unfavorable"}}
	for _, s := range r.Scores {
		data = append(data, []string{
			sym.Labeled(s.Body),
			strconv.FormatFloat(s.Score, 'f', 2, 64),
			string(s.Band),
			houses(s.Favorable),
			houses(s.Unfavorable),
		})
	}
	if err := table(b, data); err != nil {
		return err
	}

	if r.Period != nil {
		p := r.Period
		line(b, "Running period %s / %s: %.2f (%s)", p.Mahadasha, p.Antardasha, p.Score, p.Label)
		b.WriteByte('\n')
	}

	section(b, "Life aspects")
	header := []string{"Aspect"}
	for _, body := range zodiac.Bodies {
		header = append(header, sym.Body(body))
	}
	data = pterm.TableData{append(header, "Best")}
	for _, row := range r.Aspects {
		cells := []string{row.Aspect}
		for _, s := range row.Scores {
			cell := strconv.FormatFloat(s.Score, 'f', 0, 64)
			if s.Karaka {
				cell += "*"
			}
			cells = append(cells, cell)
		}
		data = append(data, append(cells, sym.Labeled(row.Best)))
	}
	if err := table(b, data); err != nil {
		return err
	}
	line(b, "* karaka")
	return nil
}

func category(b *strings.Builder, r report.CategoryReport) error {
	meta(b, r.Meta)
	section(b, sym.Cat+" "+r.Category.Name)
	line(b, "Positive houses  %s", houses(r.Category.Positive))
	line(b, "Negative houses  %s", houses(r.Category.Negative))
	line(b, "Karakas          %s", bodies(r.Category.Karakas))
	b.WriteByte('\n')
	if len(r.Ranking) == 0 {
		line(b, "Unknown category, potential %s", r.Potential.Potential)
		return nil
	}

	data := pterm.TableData{{"Rank", "Body", "Score", "Karaka"}}
	for i, s := range r.Ranking {
		karaka := ""
		if s.Karaka {
			karaka = "yes"
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			sym.Labeled(s.Body),
			strconv.FormatFloat(s.Score, 'f', 0, 64),
			karaka,
		})
	}
	if err := table(b, data); err != nil {
		return err
	}

	section(b, "Significators of positive houses")
	if err := table(b, significatorTable(r.Houses)); err != nil {
		return err
	}
	return consolidated(b, r.Potential)
}

func eventPotential(b *strings.Builder, r report.EventPotential) error {
	meta(b, r.Meta)
	section(b, sym.Event+" "+r.Event)
	c := r.Cusp
	line(b, "Event houses      %s", houses(c.Houses))
	line(b, "Cusp sub lord     %s signifies %s", sym.Labeled(c.SubLord), houses(c.SubLordHouses))
	line(b, "Matching houses   %s", houses(c.FavorableHouses))
	line(b, "Potential         %s (%s confidence)", c.Potential, c.Confidence)
	b.WriteByte('\n')
	return consolidated(b, r.Consolidated)
}

func consolidated(b *strings.Builder, k event.Consolidated) error {
	section(b, "Karakas")
	line(b, "Consolidated  %s (%s, %.2f)", k.Potential, k.Confidence, k.ConfidenceScore)
	if len(k.Checks) == 0 {
		return nil
	}
	data := pterm.TableData{{"Karaka", "Potential", "Matching houses", "Percent", "Grade"}}
	for _, c := range k.Checks {
		data = append(data, []string{
			sym.Labeled(c.Karaka),
			string(c.Result.Potential),
			houses(c.Result.FavorableHouses),
			strconv.FormatFloat(c.Percent, 'f', 2, 64),
			string(c.Grade),
		})
	}
	return table(b, data)
}

func nadiAnalysis(b *strings.Builder, r report.NadiAnalysis) error {
	meta(b, r.Meta)
	section(b, sym.Nadi+" Nadi lordship")
	line(b, "Ascendant  %s %s", sym.Sign(r.Lordship.Ascendant), r.Lordship.Ascendant)
	b.WriteByte('\n')

	data := pterm.TableData{{"Body", "Sign", "Occupies", "Owns", "Houses"}}
	for _, s := range r.Significators {
		name := sym.Labeled(s.Body)
		if s.Retrograde {
			name += " (R)"
		}
		owns := houses(s.Owned)
		if s.InheritedFrom != nil {
			owns += " via " + s.InheritedFrom.String()
		}
		data = append(data, []string{
			name,
			sym.Sign(s.Sign) + " " + s.Sign.String(),
			strconv.Itoa(s.Occupied),
			owns,
			houses(s.Houses),
		})
	}
	if err := table(b, data); err != nil {
		return err
	}

	for _, e := range r.Events {
		section(b, e.Event)
		if e.Best == nil {
			line(b, "Verdict  %s", e.Verdict)
			b.WriteByte('\n')
			continue
		}
		line(b, "Good houses  %s", houses(e.Table.Good))
		line(b, "Bad houses   %s", houses(e.Table.Bad))
		b.WriteByte('\n')

		data := pterm.TableData{{"Body", "PL", "NL", "SL", "Rating", "Strength", "Verdict", "Percent"}}
		for _, a := range e.Analyses {
			rating := string(a.Rating)
			if a.Downgraded {
				rating += " (no royal link)"
			}
			data = append(data, []string{
				sym.Labeled(a.Body),
				string(a.PL),
				fmt.Sprintf("%s %s", a.StarLord, a.NL),
				fmt.Sprintf("%s %s", a.SubLord, a.SL),
				rating,
				strconv.Itoa(a.Strength),
				string(a.Verdict),
				strconv.FormatFloat(a.Percentage, 'f', 2, 64),
			})
		}
		if err := table(b, data); err != nil {
			return err
		}
		best := *e.Best
		line(b, "Best  %s: %s (%s), %d", sym.Labeled(best.Body), best.Rating.Label(), best.Verdict, best.Strength)
		if best.SubLordGender != "" {
			line(b, "Sub lord gender  %s", best.SubLordGender)
		}
		if len(e.Suggestions) > 0 {
			line(b, "Suggestions  %s", strings.Join(e.Suggestions, ", "))
		}
		b.WriteByte('\n')
	}
	return nil
}

func nakshatraTable(b *strings.Builder, r report.NakshatraTable) error {
	nk := r.Nakshatra
	section(b, sym.Star+" "+nk.Name)
	line(b, "Star lord  %s", sym.Labeled(nk.Lord))
	line(b, "Span       %s to %s", degrees(nk.Start), degrees(nk.End))
	b.WriteByte('\n')

	data := pterm.TableData{{"Sub", "Sub-Sub", "Start", "End"}}
	for _, sub := range r.Subs {
		data = append(data, []string{sym.Labeled(sub.Lord), "", degrees(sub.Start), degrees(sub.End)})
		for _, ss := range sub.SubSubs {
			data = append(data, []string{"", sym.Labeled(ss.Lord), degrees(ss.Start), degrees(ss.End)})
		}
	}
	return table(b, data)
}
