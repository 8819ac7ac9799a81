/*
Package runner implements the batch decode pipeline for the Lattice CLI.

It bridges a configured decoder and the outside world: records are read
through a pluggable IOHandler, encoded into observation symbols, decoded,
and written back out in the handler's framing. A record that fails to decode
is reported and skipped so one bad sequence cannot sink a batch.

# Key Components

  - Runner: The orchestrator that drains a handler and aggregates path stats.
  - IOHandler: Decouples how sequences arrive and results leave (text, JSON).
  - TextHandler: Line and FASTA input, label lines out.
  - JSONHandler: Line-delimited JSON records in and out.

# Usage

	r, err := runner.New(decoder,
		runner.WithHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
		runner.WithSymbols(symbols),
		runner.WithStates(states),
	)
	if err != nil {
		log.Fatal(err)
	}

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
