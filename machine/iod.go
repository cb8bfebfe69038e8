package machine

// pendingInterrupt is one queued (port, value) pair awaiting delivery
// to the CPU.
type pendingInterrupt struct {
	port  uint8
	value uint8
}

// IOD is the I/O dispatcher: it polls every plugged device's INT line
// once per tick, queues pending interrupts, signals the CPU, delivers
// the head of the queue once the CPU acknowledges, and brokers plain
// port reads/writes the rest of the time. Polling happens on every
// tick; after it, at most one of the other three happens, in that
// priority order — see Tick.
type IOD struct {
	mb    *Motherboard
	queue []pendingInterrupt
}

// NewIOD attaches a dispatcher to mb with an empty interrupt queue.
func NewIOD(mb *Motherboard) *IOD {
	return &IOD{mb: mb}
}

// PendingCount reports how many interrupts are queued and not yet
// delivered, mirroring IOD::getStackCount in the original.
func (d *IOD) PendingCount() uint8 {
	return uint8(len(d.queue))
}

// Tick polls, signals, delivers, or brokers — see package doc for the
// fixed CPU->IOD->RAM->Devices ordering this participates in.
func (d *IOD) Tick() {
	for port := 0; port < PortCount; port++ {
		dev := d.mb.GetDevice(uint8(port))
		if dev == nil || !dev.INT() {
			continue
		}
		if len(d.queue) < InterruptQueueSize {
			d.queue = append(d.queue, pendingInterrupt{
				port:  uint8(port),
				value: d.mb.GetPortData(uint8(port)),
			})
			dev.AcknowledgeINT()
		} else {
			// Over capacity: dropped, matching the original's
			// INTERRUPT_QUEUE_SIZE discard behaviour.
			d.mb.log("IOD: interrupt queue full, dropping port %d", port)
		}
	}

	switch {
	case len(d.queue) > 0 && !d.mb.INT():
		d.mb.SetINT(true)

	case d.mb.INT() && d.mb.INR():
		d.mb.SetINT(false)

		head := d.queue[0]
		d.mb.SetAddressBus(uint32(head.port))
		d.mb.SetDataBus(head.value)

		d.queue = d.queue[1:]

	case d.mb.IE():
		address := uint8(d.mb.AddressBus() & 0xFF)

		if d.mb.GetDevice(address) != nil {
			if d.mb.RW() {
				d.mb.SetPortData(d.mb.DataBus(), address)
			} else {
				// Corrected per spec.md §4.4: the original never
				// drove the data bus on a broker-path read, leaving
				// whatever was last on the bus. Here the read value
				// is actually placed where the CPU expects it.
				d.mb.SetDataBus(d.mb.GetPortData(address))
			}
		}

		d.mb.SetIE(false)
	}
}
