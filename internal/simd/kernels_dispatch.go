package simd

func setBatchedKernels() {
	kernelAdd = addBatched
	kernelSub = subBatched
	kernelMul = mulBatched
	kernelDiv = divBatched
	kernelAddScalar = addScalarBatched
	kernelSubScalar = subScalarBatched
	kernelScalarSub = scalarSubBatched
	kernelMulScalar = mulScalarBatched
	kernelDivScalar = divScalarBatched
	kernelScalarDiv = scalarDivBatched
	kernelFMA = fmaBatched
	kernelFMAScalarMul = fmaScalarMulBatched
	kernelFMAScalarAdd = fmaScalarAddBatched
	kernelFMAScalars = fmaScalarsBatched
	kernelNeg = negBatched
	kernelAbs = absBatched
	kernelSum = sumBatched
	kernelSet = setBatched
	kernelPow = powBatched
	kernelPowScalar = powScalarBatched
	kernelScalarPow = scalarPowBatched
	kernelDivOrZero = divOrZeroBatched
	kernelLog = logBatched
	kernelSqrt = sqrtBatched
	kernelCompare = compareBatched
	kernelCompareScalar = compareScalarBatched
	kernelAnd = andBatched
	kernelAndScalar = andScalarBatched
	kernelOr = orBatched
	kernelOrScalar = orScalarBatched
	kernelSelect = selectBatched
	kernelSelectScalarTrue = selectScalarTrueBatched
	kernelSelectScalarFalse = selectScalarFalseBatched
	kernelSelectScalars = selectScalarsBatched
	kernelReplaceNaN = replaceNaNBatched
	kernelReplaceNaNScalar = replaceNaNScalarBatched
	batched = true
}

func setGenericKernels() {
	kernelAdd = addGeneric
	kernelSub = subGeneric
	kernelMul = mulGeneric
	kernelDiv = divGeneric
	kernelAddScalar = addScalarGeneric
	kernelSubScalar = subScalarGeneric
	kernelScalarSub = scalarSubGeneric
	kernelMulScalar = mulScalarGeneric
	kernelDivScalar = divScalarGeneric
	kernelScalarDiv = scalarDivGeneric
	kernelFMA = fmaGeneric
	kernelFMAScalarMul = fmaScalarMulGeneric
	kernelFMAScalarAdd = fmaScalarAddGeneric
	kernelFMAScalars = fmaScalarsGeneric
	kernelNeg = negGeneric
	kernelAbs = absGeneric
	kernelSum = sumGeneric
	kernelSet = setGeneric
	kernelPow = powGeneric
	kernelPowScalar = powScalarGeneric
	kernelScalarPow = scalarPowGeneric
	kernelDivOrZero = divOrZeroGeneric
	kernelLog = logGeneric
	kernelSqrt = sqrtGeneric
	kernelCompare = compareGeneric
	kernelCompareScalar = compareScalarGeneric
	kernelAnd = andGeneric
	kernelAndScalar = andScalarGeneric
	kernelOr = orGeneric
	kernelOrScalar = orScalarGeneric
	kernelSelect = selectGeneric
	kernelSelectScalarTrue = selectScalarTrueGeneric
	kernelSelectScalarFalse = selectScalarFalseGeneric
	kernelSelectScalars = selectScalarsGeneric
	kernelReplaceNaN = replaceNaNGeneric
	kernelReplaceNaNScalar = replaceNaNScalarGeneric
	batched = false
}
