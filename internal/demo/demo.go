// Package demo holds the built-in script the CLI runs when invoked with no
// script argument (spec.md §6: "With no argument, the runner writes a
// built-in demo to a temp path and runs that"). Script is adapted from
// original_source/game.py's `game` string — the same bouncing-ball physics
// loop threaded through `set`, gated by `mouse-pressed?`, redrawn each
// frame via background/draw/draw-ball/render — renamed to this spec's
// canonical symbol spellings (`mouse-pressed?` rather than the original's
// ungrammatical `mousepressed?`) and written in this language's surface
// syntax rather than transliterated.
package demo

// Script is a complete program exercising `fun`, `if`, `do`, `set`, tail
// recursion and the width/height, mouse-pressed?, background, draw,
// draw-ball and render built-ins of spec.md §6. It does not call the
// arrow-key queries, mousex/mousey or coinflip.
const Script = `(do
    (set obstacles (list 1 0 1 0 0 1 0 0))

    (fun jump y dy
        (if (< y 1)
            (do (display "jump!") 20)
            dy))

    (fun step-x x dx
        (+ (if (> x (width)) 0 x) dx))

    (fun step-y y dy
        (+ y dy))

    (fun gravity y dy
        (if (> y 0) (- dy 1) dy))

    (fun ground y
        (if (< y 1) 0 y))

    (fun draw-ob x
        (draw x (height) 200 200 200))

    (fun draw-obs (do
        (draw-ob 20)
        (draw-ob 60)
        (draw-ob 100)
        (draw-ob 180)))

    (fun mainloop x y dx dy
        (do
            (if (mouse-pressed?)
                (set dy (jump y dy)))
            (set x (step-x x dx))
            (set y (step-y y dy))
            (set y (ground y))
            (set dy (gravity y dy))
            (background 100 100 100)
            (draw-obs)
            (draw-ball x (- (height) y))
            (render)
            (mainloop x y dx dy)))

    (mainloop 0 0 1 0))
`
