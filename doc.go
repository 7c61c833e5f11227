// Package stylefx is a trigger-driven style interpolation engine with an
// [Ebitengine] scene host.
//
// A [Manager] owns the effects declared for one element: click, hover and
// page-load effects run on a clock, scroll effects follow the scroll offset
// and physics effects simulate a falling, bouncing body. Every frame the
// manager folds the base style, the continuous layers and the live discrete
// effect into a single [StyleMap], composing transform members into one
// "transform" value.
//
// # Quick start
//
//	cfg, err := stylefx.LoadConfig("button.yaml")
//	if err != nil {
//		log.Fatal().Err(err).Msg("config")
//	}
//	mgr := stylefx.NewManager(cfg, stylefx.WithLogger(logger))
//
//	scene := stylefx.NewScene()
//	box := stylefx.NewRect("button", 160, 48, stylefx.Color{R: 0.2, G: 0.5, B: 1, A: 1})
//	box.X, box.Y = 40, 40
//	scene.Root().AddChild(box)
//	scene.Bind(box, mgr)
//
//	stylefx.Run(scene, stylefx.RunConfig{Title: "stylefx", Width: 640, Height: 480})
//
// The manager can also be driven without a scene: call the trigger methods
// ([Manager.Click], [Manager.HoverEnter], [Manager.HoverLeave],
// [Manager.SetLoadProgress], [Manager.Scroll]) from any host, then
// [Manager.Update] and [Manager.Styles] once per frame. The wsbridge
// package does this for a browser over a WebSocket.
//
// # Priority
//
// Only one discrete effect is live at a time. Hover outranks load, which
// outranks click. A request at the same or a higher tier interrupts the live
// effect, whose current values become the new base. Lower-tier requests wait
// until the higher tier releases.
//
// # Values
//
// Values are numbers with an optional unit (px, %, vw, vh, em, rem, deg,
// rad, turn) or a flat calc() expression. Anything else is carried through
// as a base value but never interpolated.
//
// [Ebitengine]: https://ebitengine.org
package stylefx
