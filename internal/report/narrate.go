package report

import (
	"io"

	"golang.org/x/text/message"

	"gamerena/internal/combat"
)

// Narrator prints a one-line account of each match event. Its Emit method
// fits Arena.Emit.
type Narrator struct {
	w   io.Writer
	p   *message.Printer
	err error
}

func NewNarrator(w io.Writer, p *message.Printer) *Narrator {
	return &Narrator{w: w, p: p}
}

// Err returns the first write error. Later events are dropped after it.
func (n *Narrator) Err() error { return n.err }

func (n *Narrator) Emit(ev combat.Event) {
	if n.err != nil {
		return
	}
	pl := ev.Payload
	var err error
	switch ev.Type {
	case combat.EventCast:
		verb := str(pl["verb"])
		if verb == "" {
			verb = "uses " + str(pl["skill"])
		}
		_, err = n.p.Fprintf(n.w, "[%8.2f] %s %s, targeting %s.\n", ev.T, pl["caster"], verb, pl["target"])
	case combat.EventDodge:
		_, err = n.p.Fprintf(n.w, "[%8.2f]   %s dodges.\n", ev.T, pl["target"])
	case combat.EventHit:
		_, err = n.p.Fprintf(n.w, "[%8.2f]   %s takes %d damage, %d HP left.\n", ev.T, pl["target"], num(pl["dmg"]), num(pl["hp"]))
	case combat.EventHeal:
		_, err = n.p.Fprintf(n.w, "[%8.2f]   %s recovers %d HP, now %d.\n", ev.T, pl["target"], num(pl["heal"]), num(pl["hp"]))
	case combat.EventDefeat:
		_, err = n.p.Fprintf(n.w, "[%8.2f]   %s is defeated by %s.\n", ev.T, pl["target"], pl["by"])
	}
	n.err = err
}
